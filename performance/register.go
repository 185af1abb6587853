package performance

import (
	"slices"

	"github.com/stavekit/ostinato"
	"github.com/stavekit/ostinato/internal/registry"
)

// GeneratorFactory builds a fresh generator instance. Factories run once per
// generation run, so any expensive setup should live behind the returned
// generator, not in the factory itself.
type GeneratorFactory func() ostinato.Generator[Event]

// Global is the process-wide catalog of performance generator factories.
var Global = registry.New[GeneratorFactory]()

// RegisterGenerator announces a generator factory under id, replacing any
// earlier registration with the same id.
func RegisterGenerator(id string, factory GeneratorFactory) {
	Global.Add(id, factory)
}

// LookupGenerator fetches a registered factory by id.
func LookupGenerator(id string) (GeneratorFactory, bool) {
	return Global.Get(id)
}

// DeregisterGenerator removes the factory registered under id.
func DeregisterGenerator(id string) {
	Global.Del(id)
}

// Generators lists the registered ids in lexical order.
func Generators() []string {
	return slices.Sorted(slices.Values(Global.Keys()))
}
