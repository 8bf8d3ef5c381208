//Package main provides an offline preview for the line protocol. It plots a recorded or piped stream, or renders
//the built in scenarios directly to png files
package main

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"strings"

	"gendata/emitter"
	"gendata/signalGen"
	"gendata/streamParser"
	"gendata/tPlot"
	"github.com/pbnjay/memory"
	"golang.org/x/sync/errgroup"
)

//Mega SI unit prefix
const Mega = 1024 * 1024

//bytesPerPoint is the memory a retained point occupies in the collector
const bytesPerPoint = 16

//noScenario marks that no scenario was selected on the command line
const noScenario = -1

//maxStatsLines limits the per channel summary logged after collecting
const maxStatsLines = 16

//application bundles the command line configuration options
type application struct {
	inPath          string
	scenarioID      int
	renderAll       bool
	outPath         string
	outFolderPath   string
	style           tPlot.Style
	maxPoints       int
	numWorkers      int
	passthrough     bool
	scenarioOptions signalGen.Options
}

//closeWithErrLog is a helper that calls Close on c and prints a log message if an error occurs
func closeWithErrLog(name string, c io.Closer) {
	if err := c.Close(); err != nil {
		log.Printf("failed to close %v : %v", name, err)
	}
}

var errCollisionAvoidanceFailed = errors.New("unable to avoid file/folder name collision, using returned name may overwrite data ")

//defaultCreateCollisionFreeName is a convenience wrapper for createCollisionFreeName checking for
//collision using os.Stat
func defaultCreateCollisionFreeName(outPath string) (string, error) {
	return createCollisionFreeName(outPath, func(path string) bool {
		_, err := os.Stat(path)
		return !os.IsNotExist(err)
	})
}

//createCollisionFreeName checks if outPath already exists and tries to add numbers from 1 to 100 to the name
//(before the extension) to find an unused one. If all are taken errCollisionAvoidanceFailed is returned
func createCollisionFreeName(outPath string, doesFileExist func(path string) bool) (string, error) {
	dir := filepath.Dir(outPath)
	base := filepath.Base(outPath)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)

	candidate := outPath
	collision := doesFileExist(candidate)
	for suffix := 1; collision && suffix < 100; suffix++ {
		candidate = filepath.Join(dir, fmt.Sprintf("%v-%v%v", stem, suffix, ext))
		collision = doesFileExist(candidate)
	}
	if collision {
		return candidate, errCollisionAvoidanceFailed
	}
	return candidate, nil
}

//ParseAndValidateFlags parses args (without the program name) and returns the parsed values if all logic checks
//pass. Otherwise a multiline error is returned that also contains an overview over all flags
func ParseAndValidateFlags(args []string) (*application, error) {
	usageBuf := &bytes.Buffer{}
	cmdFlags := flag.NewFlagSet("preview", flag.ContinueOnError)
	cmdFlags.SetOutput(usageBuf)

	inPath := cmdFlags.String("in", "-", "File with protocol lines to plot, - reads stdin. Ignored if scenario or all is set")
	scenarioID := cmdFlags.Int("scenario", noScenario, "Render this scenario in memory instead of reading a stream")
	renderAll := cmdFlags.Bool("all", false, "Render every scenario to its own png in outFolderPath")
	outPath := cmdFlags.String("out", "preview.png", "Path of the png file. A numeric suffix is added if it exists")
	outFolderPath := cmdFlags.String("outFolderPath", "gendata-preview", "Directory for the pngs of -all. A numeric suffix is added if it exists")
	styleName := cmdFlags.String("style", "scatter", "Draw style, scatter or lines")
	bufferMB := cmdFlags.Int("bufferMB", 16, "Memory for retained points per channel in MB. Older points are dropped")
	numWorkers := cmdFlags.Int("numWorkers", runtime.NumCPU(), "Number of scenarios rendered in parallel by -all")
	passthrough := cmdFlags.Bool("passthrough", true, "Copy lines that are not part of the protocol to stdout")
	count := cmdFlags.Int("count", signalGen.DefaultOptions().Count, "Number of colours rendered for the colors scenario")
	seed := cmdFlags.Float64("seed", signalGen.DefaultOptions().Seed, "Initial hue angle of the colors scenario")

	if err := cmdFlags.Parse(args); err != nil {
		return nil, fmt.Errorf("%v\n%s", err, usageBuf.String())
	}

	var style tPlot.Style
	err := func() (descriptiveError error) {
		//append usage string if we return an error
		defer func() {
			if descriptiveError != nil {
				cmdFlags.PrintDefaults()
				descriptiveError = fmt.Errorf("%v\nUsage:\n%s", descriptiveError.Error(), usageBuf.String())
			}
		}()

		if *scenarioID != noScenario && *renderAll {
			descriptiveError = fmt.Errorf("scenario and all are mutually exclusive")
			return
		}
		if *scenarioID != noScenario {
			if _, ok := scenarioInfo(*scenarioID); !ok {
				descriptiveError = fmt.Errorf("unknown scenario %v", *scenarioID)
				return
			}
		}
		if *inPath == "" {
			descriptiveError = fmt.Errorf("please set in, use - for stdin")
			return
		}
		if *numWorkers < 1 {
			descriptiveError = fmt.Errorf("please set numWorkers to a number in [1,%v]", runtime.NumCPU())
			return
		}
		if *count < 1 {
			descriptiveError = fmt.Errorf("count needs to be positive, a preview cannot render an endless stream")
			return
		}
		if *bufferMB < 1 {
			descriptiveError = fmt.Errorf("buffer needs to be at least one MB")
			return
		}
		if total := memory.TotalMemory(); total > 0 && uint64(*bufferMB) > total/Mega {
			descriptiveError = fmt.Errorf("your buffer is larger than the available memory (%v MB)", total/Mega)
			return
		}

		var err error
		style, err = tPlot.ParseStyle(*styleName)
		if err != nil {
			descriptiveError = err
			return
		}
		return nil
	}()
	if err != nil {
		return nil, err
	}

	return &application{
		inPath:        *inPath,
		scenarioID:    *scenarioID,
		renderAll:     *renderAll,
		outPath:       *outPath,
		outFolderPath: *outFolderPath,
		style:         style,
		maxPoints:     *bufferMB * Mega / bytesPerPoint,
		numWorkers:    *numWorkers,
		passthrough:   *passthrough,
		scenarioOptions: signalGen.Options{
			Count: *count,
			Seed:  *seed,
		},
	}, nil
}

//scenarioInfo looks up id without falling back to the default scenario
func scenarioInfo(id int) (signalGen.ScenarioInfo, bool) {
	for _, info := range signalGen.GetAvailableScenarios() {
		if info.ID == id {
			return info, true
		}
	}
	return signalGen.ScenarioInfo{}, false
}

//collectStream parses the protocol lines in r into a new collector. Other lines are copied to passthrough
func collectStream(r io.Reader, passthrough io.Writer, maxPoints int) (*tPlot.Collector, error) {
	collector, err := tPlot.NewCollector(maxPoints)
	if err != nil {
		return nil, err
	}
	if err := streamParser.Scan(r, passthrough, collector.Add); err != nil {
		return nil, fmt.Errorf("failed to parse stream : %v", err)
	}
	return collector, nil
}

//collectScenario runs the scenario with the given id against an in memory emitter and parses the result back
func collectScenario(id int, opts signalGen.Options, maxPoints int) (*tPlot.Collector, error) {
	scenario, _ := signalGen.GetScenario(id)
	buf := &bytes.Buffer{}
	em := emitter.NewEmitter(buf, false, 0)
	if err := scenario(em, opts); err != nil {
		return nil, fmt.Errorf("scenario %v failed : %v", id, err)
	}
	if err := em.Flush(); err != nil {
		return nil, err
	}
	return collectStream(buf, nil, maxPoints)
}

//logChannelStats logs a summary for the first maxStatsLines channels of collector
func logChannelStats(collector *tPlot.Collector, logger *log.Logger) {
	channels := collector.Channels()
	for i, channel := range channels {
		if i == maxStatsLines {
			logger.Printf("skipping summary of %v more channels\n", len(channels)-maxStatsLines)
			return
		}
		stats, _ := collector.Stats(channel)
		logger.Printf("channel %v : %v\n", channel, stats)
	}
}

//StorePlot renders collector to a png at path
func StorePlot(title string, collector *tPlot.Collector, style tPlot.Style, path string) error {
	plotFile, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create plot file : %v", err)
	}
	defer closeWithErrLog(plotFile.Name(), plotFile)

	bufOut := bufio.NewWriter(plotFile)
	if err := tPlot.PlotAndStore(title, collector, style, bufOut); err != nil {
		return err
	}
	if err := bufOut.Flush(); err != nil {
		return fmt.Errorf("failed to write plot file : %v", err)
	}
	return plotFile.Sync()
}

//scenarioFileName returns the png name used for info by renderAll
func scenarioFileName(info signalGen.ScenarioInfo) string {
	return fmt.Sprintf("scenario-%v-%v.png", info.ID, info.Name)
}

//renderAll renders every registered scenario to folderPath using numWorkers parallel workers
func renderAll(ctx context.Context, app *application, folderPath string, logger *log.Logger) error {
	workers, ctx := errgroup.WithContext(ctx)
	jobs := make(chan signalGen.ScenarioInfo)

	for i := 0; i < app.numWorkers; i++ {
		workerID := i
		workers.Go(func() error {
			for info := range jobs {
				collector, err := collectScenario(info.ID, app.scenarioOptions, app.maxPoints)
				if err != nil {
					return err
				}
				path := filepath.Join(folderPath, scenarioFileName(info))
				if err := StorePlot(info.Name, collector, app.style, path); err != nil {
					return fmt.Errorf("failed to store plot for scenario %v : %v", info.Name, err)
				}
				logger.Printf("worker %v: stored %v (%v points)\n", workerID, path, collector.Len())
			}
			return nil
		})
	}

	//feed jobs
	workers.Go(func() error {
		defer close(jobs)
		for _, info := range signalGen.GetAvailableScenarios() {
			if err := ctx.Err(); err != nil {
				return fmt.Errorf("aborted before rendering %v : %v", info.Name, err)
			}
			select {
			case <-ctx.Done():
				return fmt.Errorf("aborted before rendering %v : %v", info.Name, ctx.Err())
			case jobs <- info:
			}
		}
		return nil
	})

	if err := workers.Wait(); err != nil {
		return fmt.Errorf("error in worker or abort signal from os: %v", err)
	}
	return nil
}

//openInput returns stdin for "-" and the opened file otherwise
func openInput(path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	return os.Open(path)
}

func main() {
	logger := log.New(os.Stderr, "preview: ", log.LstdFlags)

	app, err := ParseAndValidateFlags(os.Args[1:])
	if err != nil {
		fmt.Printf("Error parsing config : %v\n", err)
		return
	}

	if app.renderAll {
		folderPath, err := defaultCreateCollisionFreeName(app.outFolderPath)
		if err != nil {
			if !errors.Is(err, errCollisionAvoidanceFailed) {
				logger.Fatalf("Failed to generate output folder name : %v", err)
			}
			//deliberate decision to not delete anything, we overwrite instead
			logger.Printf("failed to avoid file name collision, overwriting %v", folderPath)
		}
		if err := os.MkdirAll(folderPath, os.ModePerm); err != nil {
			logger.Fatalf("Failed to create output directory %v : %v\n", folderPath, err)
		}

		//create context that closes done when OS signal arrives or main is done
		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
		defer cancel()
		if err := renderAll(ctx, app, folderPath, logger); err != nil {
			logger.Fatalf("Rendering failed : %v\n", err)
		}
		logger.Printf("stored previews in %v\n", folderPath)
		return
	}

	var collector *tPlot.Collector
	title := ""
	if app.scenarioID != noScenario {
		info, _ := scenarioInfo(app.scenarioID)
		title = info.Name
		collector, err = collectScenario(app.scenarioID, app.scenarioOptions, app.maxPoints)
		if err != nil {
			logger.Fatalf("Failed to render scenario : %v\n", err)
		}
	} else {
		in, err := openInput(app.inPath)
		if err != nil {
			logger.Fatalf("Failed to open input %v : %v\n", app.inPath, err)
		}
		defer closeWithErrLog(app.inPath, in)

		var passthrough io.Writer
		if app.passthrough {
			passthrough = os.Stdout
		}
		title = "stdin"
		if app.inPath != "-" {
			title = filepath.Base(app.inPath)
		}
		collector, err = collectStream(in, passthrough, app.maxPoints)
		if err != nil {
			logger.Fatalf("%v\n", err)
		}
	}

	logChannelStats(collector, logger)

	outPath, err := defaultCreateCollisionFreeName(app.outPath)
	if err != nil {
		logger.Printf("failed to avoid file name collision, overwriting %v", outPath)
	}
	if err := StorePlot(title, collector, app.style, outPath); err != nil {
		logger.Fatalf("Failed to store plot : %v\n", err)
	}
	logger.Printf("stored %v points of %v channels in %v\n", collector.Len(), len(collector.Channels()), outPath)
}
