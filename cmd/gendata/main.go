//Package main provides the cli that writes synthetic signal data in the ~.<channel>@<values> line protocol to stdout
package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"gendata/emitter"
	"gendata/signalGen"
)

//application bundles the command line configuration options
type application struct {
	scenarioID int
	delay      time.Duration
	autoFlush  bool
	listOnly   bool
	options    signalGen.Options
}

//ParseAndValidateFlags parses args (without the program name) and returns the parsed values if all logic checks
//pass. Otherwise a multiline error is returned that also contains an overview over all flags.
//The scenario selector is the first positional argument; a missing or malformed one selects the default scenario
func ParseAndValidateFlags(args []string) (*application, error) {
	usageBuf := &bytes.Buffer{}
	cmdFlags := flag.NewFlagSet("gendata", flag.ContinueOnError)
	cmdFlags.SetOutput(usageBuf)

	defaults := signalGen.DefaultOptions()
	delay := cmdFlags.Duration("delay", 0, "Pause after every emitted line, e.g. 80ms. Throttles the rate a consumer receives data")
	autoFlush := cmdFlags.Bool("flush", true, "Flush stdout after every line so piped consumers see data immediately")
	count := cmdFlags.Int("count", defaults.Count, "Number of colours emitted by the colors scenario. 0 runs until killed")
	seed := cmdFlags.Float64("seed", defaults.Seed, "Initial hue angle in [0,1) of the colors scenario")
	listOnly := cmdFlags.Bool("list", false, "Print the available scenarios and exit")
	cmdFlags.Usage = func() {
		fmt.Fprintf(usageBuf, "gendata [flags] [scenario]\n")
		cmdFlags.PrintDefaults()
	}

	if err := cmdFlags.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, fmt.Errorf("%w\n%s", err, usageBuf.String())
		}
		return nil, fmt.Errorf("%v\n%s", err, usageBuf.String())
	}

	err := func() (descriptiveError error) {
		//append usage string if we return an error
		defer func() {
			if descriptiveError != nil {
				cmdFlags.Usage()
				descriptiveError = fmt.Errorf("%v\nUsage:\n%s", descriptiveError.Error(), usageBuf.String())
			}
		}()

		if *delay < 0 {
			descriptiveError = fmt.Errorf("delay may not be negative")
			return
		}
		if *count < 0 {
			descriptiveError = fmt.Errorf("count may not be negative, use 0 for an endless stream")
			return
		}
		return nil
	}()
	if err != nil {
		return nil, err
	}

	return &application{
		scenarioID: signalGen.ParseSelector(cmdFlags.Args()),
		delay:      *delay,
		autoFlush:  *autoFlush,
		listOnly:   *listOnly,
		options: signalGen.Options{
			Count: *count,
			Seed:  *seed,
		},
	}, nil
}

//listScenarios writes one line per registered scenario to out
func listScenarios(out io.Writer) error {
	for _, info := range signalGen.GetAvailableScenarios() {
		suffix := ""
		if info.ID == signalGen.DefaultScenarioID {
			suffix = " (default)"
		}
		if _, err := fmt.Fprintf(out, "%v\t%v%v\n", info.ID, info.Name, suffix); err != nil {
			return err
		}
	}
	return nil
}

//run executes the scenario selected in app and writes its lines to out
func run(app *application, out io.Writer, logger *log.Logger) error {
	scenario, info := signalGen.GetScenario(app.scenarioID)
	logger.Printf("running scenario %v (%v)\n", info.ID, info.Name)

	em := emitter.NewEmitter(out, app.autoFlush, app.delay)
	startTime := time.Now()
	scenarioErr := scenario(em, app.options)
	//flush whatever made it into the buffer, even if the scenario failed
	if err := em.Flush(); err != nil && scenarioErr == nil {
		scenarioErr = err
	}
	if scenarioErr != nil {
		return fmt.Errorf("scenario %v (%v) failed after %v lines : %w", info.ID, info.Name, em.Lines(), scenarioErr)
	}
	logger.Printf("scenario %v done : %v lines on %v channels in %v\n", info.Name, em.Lines(), em.Channels(), time.Since(startTime))
	return nil
}

func main() {
	logger := log.New(os.Stderr, "gendata: ", log.LstdFlags)

	//Handle command line options
	app, err := ParseAndValidateFlags(os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			fmt.Fprintf(os.Stderr, "%v\nScenarios:\n", err)
			_ = listScenarios(os.Stderr)
			return
		}
		logger.Fatalf("Error parsing config : %v\n", err)
	}

	if app.listOnly {
		if err := listScenarios(os.Stdout); err != nil {
			logger.Fatalf("Failed to list scenarios : %v\n", err)
		}
		return
	}

	if err := run(app, os.Stdout, logger); err != nil {
		logger.Fatalf("%v\n", err)
	}
}
