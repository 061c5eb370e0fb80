package render

import (
	"os"
	"strings"
)

// Capabilities is what the output terminal can show.
type Capabilities struct {
	Name    string
	Unicode bool
}

// DetectCapabilities inspects the environment. CONNROUTE_TERMINAL_MODE set
// to "ascii" or "unicode" overrides detection.
func DetectCapabilities() Capabilities {
	return detect(os.Getenv)
}

func detect(getenv func(string) string) Capabilities {
	term := getenv("TERM")
	caps := Capabilities{Name: term, Unicode: true}

	switch strings.ToLower(getenv("CONNROUTE_TERMINAL_MODE")) {
	case "ascii":
		caps.Unicode = false
		return caps
	case "unicode":
		return caps
	}

	if term == "dumb" || term == "linux" {
		caps.Unicode = false
		return caps
	}
	for _, key := range []string{"LC_ALL", "LC_CTYPE", "LANG"} {
		if v := getenv(key); v != "" {
			v = strings.ToUpper(v)
			caps.Unicode = strings.Contains(v, "UTF-8") || strings.Contains(v, "UTF8")
			return caps
		}
	}
	return caps
}
