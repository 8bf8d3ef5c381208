package signalGen

import (
	"sort"
	"strconv"
	"strings"
)

//Contains the scenario catalogue and the selector that maps the command line to a scenario.
//If you add a new scenario, implement it with the Scenario signature and add it to availableScenarios

//Scenario writes its data points to sink
type Scenario func(sink Sink, opts Options) error

//DefaultScenarioID is used for missing, malformed or unknown selectors
const DefaultScenarioID = 0

//ScenarioInfo describes a registered scenario
type ScenarioInfo struct {
	ID   int
	Name string
	//Unbounded is true if the scenario may run forever for some Options
	Unbounded bool
}

type registryEntry struct {
	info     ScenarioInfo
	scenario Scenario
}

//availableScenarios hand edited list of scenarios, keyed by selector
var availableScenarios = map[int]registryEntry{
	0: {ScenarioInfo{ID: 0, Name: "bars"}, Bars},
	1: {ScenarioInfo{ID: 1, Name: "gated-sine"}, GatedSineWave},
	2: {ScenarioInfo{ID: 2, Name: "rectangles"}, NestedRectangles},
	3: {ScenarioInfo{ID: 3, Name: "ramps"}, PiecewiseRamps},
	4: {ScenarioInfo{ID: 4, Name: "inverse-trig"}, InverseTrigFeedback},
	5: {ScenarioInfo{ID: 5, Name: "grid-labels"}, LabelGrid},
	6: {ScenarioInfo{ID: 6, Name: "colors", Unbounded: true}, Colors},
}

//GetAvailableScenarios returns all registered scenarios sorted by id
func GetAvailableScenarios() []ScenarioInfo {
	infos := make([]ScenarioInfo, 0, len(availableScenarios))
	for _, entry := range availableScenarios {
		infos = append(infos, entry.info)
	}
	sort.Slice(infos, func(i, j int) bool {
		return infos[i].ID < infos[j].ID
	})
	return infos
}

//GetScenario returns the scenario registered for id together with its description. Unknown ids resolve to the
//default scenario
func GetScenario(id int) (Scenario, ScenarioInfo) {
	entry, ok := availableScenarios[id]
	if !ok {
		entry = availableScenarios[DefaultScenarioID]
	}
	return entry.scenario, entry.info
}

//ParseSelector interprets the first element of args as scenario id. A missing, non numeric or unregistered
//selector silently yields DefaultScenarioID
func ParseSelector(args []string) int {
	if len(args) == 0 {
		return DefaultScenarioID
	}
	id, err := strconv.Atoi(strings.TrimSpace(args[0]))
	if err != nil {
		return DefaultScenarioID
	}
	if _, ok := availableScenarios[id]; !ok {
		return DefaultScenarioID
	}
	return id
}
