package core

// Level tables shared by the padding, colorize and cli stages. Callers are
// free to use any level vocabulary; these are the stock sets.

// DefaultLevels returns the default level set ordered by severity
func DefaultLevels() map[string]int {
	return map[string]int{
		"error": 0,
		"warn":  1,
		"info":  2,
		"debug": 3,
		"trace": 4,
	}
}

// DefaultColors returns the default level to color mapping
func DefaultColors() map[string][]string {
	return map[string][]string{
		"error": {"red"},
		"warn":  {"yellow"},
		"info":  {"green"},
		"debug": {"blue"},
		"trace": {"magenta"},
	}
}

// CLILevels returns the CLI level set ordered by severity
func CLILevels() map[string]int {
	return map[string]int{
		"error":   0,
		"warn":    1,
		"help":    2,
		"data":    3,
		"info":    4,
		"debug":   5,
		"prompt":  6,
		"verbose": 7,
		"input":   8,
		"silly":   9,
	}
}

// CLIColors returns the CLI level to color mapping
func CLIColors() map[string][]string {
	return map[string][]string{
		"error":   {"red"},
		"warn":    {"yellow"},
		"help":    {"cyan"},
		"data":    {"white"},
		"info":    {"green"},
		"debug":   {"blue"},
		"prompt":  {"white"},
		"verbose": {"cyan"},
		"input":   {"white"},
		"silly":   {"magenta"},
	}
}

// SyslogLevels returns the syslog level set ordered by severity
func SyslogLevels() map[string]int {
	return map[string]int{
		"emerg":   0,
		"alert":   1,
		"crit":    2,
		"error":   3,
		"warning": 4,
		"notice":  5,
		"info":    6,
		"debug":   7,
	}
}

// SyslogColors returns the syslog level to color mapping
func SyslogColors() map[string][]string {
	return map[string][]string{
		"emerg":   {"red"},
		"alert":   {"yellow"},
		"crit":    {"red"},
		"error":   {"red"},
		"warning": {"red"},
		"notice":  {"yellow"},
		"info":    {"green"},
		"debug":   {"blue"},
	}
}

// LevelNames returns the level names of a level table
func LevelNames(levels map[string]int) []string {
	names := make([]string, 0, len(levels))
	for name := range levels {
		names = append(names, name)
	}
	return names
}
