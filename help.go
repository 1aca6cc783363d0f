package indent

import (
	"io"
	"text/template"

	"github.com/midbel/textwrap"
)

const helptext = `indent - reformat C source code

usage: indent [-w] [-o file] [-j n] [-verbose] [switches...] [file...]

{{wrap "without files, indent reads its input from stdin and writes the result to stdout. Switches are also read from the profile file .indent.pro found in the current directory or in the home directory, or from the files given with -P. Profiles ending with .yml or .yaml are YAML mappings of option names to values."}}

Switches:
{{range . }}
  {{printf "%-24s" .Usage}} {{.Help}}{{if .Long}} ({{.Long}}){{end}}
{{- end}}
`

type usageEntry struct {
	Usage string
	Long  string
	Help  string
}

// Usage writes the help of the command line tool to w.
func Usage(w io.Writer) error {
	t, err := template.New("help").Funcs(funcmap).Parse(helptext)
	if err != nil {
		return err
	}
	return t.Execute(w, usageEntries())
}

var funcmap = template.FuncMap{
	"wrap": textwrap.Wrap,
}

func usageEntries() []usageEntry {
	var list []usageEntry
	for _, opt := range optionTable {
		var (
			e    usageEntry
			name = "-" + opt.name()
		)
		switch o := opt.(type) {
		case boolOption:
			e = usageEntry{Usage: name + ", -n" + o.Name, Long: o.Long, Help: o.Help}
		case intOption:
			e = usageEntry{Usage: name + "<n>", Long: o.Long, Help: o.Help}
		case floatOption:
			e = usageEntry{Usage: name + "<n.n>", Long: o.Long, Help: o.Help}
		case typeOption:
			e = usageEntry{Usage: name + "<name>", Long: o.Long, Help: o.Help}
		case specialOption:
			if o.Value {
				name += "<file>"
			}
			e = usageEntry{Usage: name, Help: o.Help}
		}
		list = append(list, e)
	}
	return list
}
