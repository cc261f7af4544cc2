// Command laxjson queries and reformats JSON files using the relaxed
// grammar and path expressions of the laxjson package.
package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"github.com/spf13/afero"

	"github.com/dhawalhost/laxjson"
)

// CLI defines the command-line interface
var CLI struct {
	Get GetCmd `cmd:"" help:"Print the values selected by a path expression."`
	Fmt FmtCmd `cmd:"" help:"Reformat a JSON document."`
}

// GetCmd prints every match of a path expression against a document.
type GetCmd struct {
	Path   string `arg:"" help:"Path expression, e.g. '$..author'."`
	File   string `arg:"" optional:"" type:"path" help:"Input file. Reads stdin when omitted."`
	Pretty bool   `short:"p" help:"Pretty-print matches."`
	First  bool   `short:"1" help:"Print only the first match."`
}

func (c *GetCmd) Run() error {
	doc, err := load(c.File)
	if err != nil {
		return err
	}
	path, err := laxjson.CompilePath(c.Path)
	if err != nil {
		return err
	}
	if c.First {
		v, ok := path.MatchFirst(doc.Root())
		if !ok {
			return fmt.Errorf("no match for %s", c.Path)
		}
		fmt.Println(string(v.JSON(c.Pretty)))
		return nil
	}
	for _, v := range path.Match(doc.Root()) {
		fmt.Println(string(v.JSON(c.Pretty)))
	}
	return nil
}

// FmtCmd parses a document and writes it back out, pretty by default.
type FmtCmd struct {
	File    string `arg:"" optional:"" type:"path" help:"Input file. Reads stdin when omitted."`
	Compact bool   `short:"c" help:"Emit compact output instead of pretty."`
	Write   bool   `short:"w" help:"Rewrite the input file in place (requires a file)."`
}

func (c *FmtCmd) Run() error {
	doc, err := load(c.File)
	if err != nil {
		return err
	}
	if c.Write {
		if c.File == "" {
			return fmt.Errorf("-w requires an input file")
		}
		return laxjson.SaveFile(afero.NewOsFs(), c.File, doc, !c.Compact)
	}
	return laxjson.SaveWriter(os.Stdout, doc, !c.Compact)
}

func load(file string) (*laxjson.Document, error) {
	if file == "" {
		return laxjson.LoadReader(os.Stdin)
	}
	return laxjson.LoadFile(afero.NewOsFs(), file)
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("laxjson"),
		kong.Description("Query and reformat JSON documents (relaxed grammar)."),
		kong.UsageOnError(),
	)
	ctx.FatalIfErrorf(ctx.Run())
}
