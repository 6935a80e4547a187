package bdfgo

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/encoding/charmap"
)

// charmaps lists the code pages selectable by name.
var charmaps = map[string]*charmap.Charmap{
	"latin1": charmap.ISO8859_1,
	"cp437":  charmap.CodePage437,
	"cp1252": charmap.Windows1252,
	"koi8r":  charmap.KOI8R,
}

// LookupCharmap returns the code page registered under name. Matching is
// case-insensitive and an empty name selects latin1.
func LookupCharmap(name string) (*charmap.Charmap, error) {
	if name == "" {
		return charmap.ISO8859_1, nil
	}
	cm, ok := charmaps[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("unknown charmap %q (want one of %s)", name, strings.Join(CharmapNames(), ", "))
	}
	return cm, nil
}

// CharmapNames returns the names LookupCharmap accepts, sorted.
func CharmapNames() []string {
	names := make([]string, 0, len(charmaps))
	for name := range charmaps {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
