//Package signalGen provides the catalogue of synthetic signal generators. Each scenario produces a sequence of
//DataPoints that is handed to a Sink, usually an emitter writing the line protocol to stdout
package signalGen

//DataPoint is a single sample of the named channel. Values are rendered in order by the emitter
type DataPoint struct {
	Channel string
	Values  []float64
}

//NewDataPoint is a convenience constructor that copies values
func NewDataPoint(channel string, values ...float64) DataPoint {
	buf := make([]float64, len(values))
	copy(buf, values)
	return DataPoint{
		Channel: channel,
		Values:  buf,
	}
}

//Sink consumes the output of a scenario
type Sink interface {
	//Emit writes p as one protocol line
	Emit(p DataPoint) error
	//Passthrough writes text as one raw line that is not part of the protocol
	Passthrough(text string) error
}

//Options bundles the few knobs a scenario may look at. Most scenarios only use fixed constants
type Options struct {
	//Count is the number of colours emitted by the colour scenario. 0 means unbounded
	Count int
	//Seed is the initial theta of the colour cycler
	Seed float64
}

//DefaultColorSeed is the initial cycler angle used when no seed is configured
const DefaultColorSeed = 0.531

//DefaultOptions returns the options used when the caller does not configure anything
func DefaultOptions() Options {
	return Options{
		Count: 100,
		Seed:  DefaultColorSeed,
	}
}
