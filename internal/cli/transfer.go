package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/rileyhilliard/tilemon/internal/errors"
	"github.com/rileyhilliard/tilemon/internal/layout"
	"github.com/rileyhilliard/tilemon/internal/ui"
)

// layoutFileVersion is written to exports and checked on import.
const layoutFileVersion = 1

// layoutFile is the export format. JSON keys match the stored blobs so a
// raw tile_configs array from the phone app imports as-is.
type layoutFile struct {
	Version int                   `json:"version" yaml:"version"`
	Display *layout.DisplayConfig `json:"display,omitempty" yaml:"display,omitempty"`
	Tiles   []layout.Entry        `json:"tiles" yaml:"tiles"`
}

var layoutExportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Write the layout and display settings as YAML",
	Long: `Write every saved tile and the display settings as YAML, to a file or
to stdout. The output can be edited and read back with 'tilemon layout import'.`,
	Args: cobra.MaximumNArgs(1),
	RunE: withEngine(func(cmd *cobra.Command, eng *layout.Engine, args []string) error {
		if len(args) == 0 {
			return exportLayout(cmd.OutOrStdout(), eng)
		}

		var buf bytes.Buffer
		if err := exportLayout(&buf, eng); err != nil {
			return err
		}
		if err := os.WriteFile(args[0], buf.Bytes(), 0o644); err != nil {
			return errors.WrapWithCode(err, errors.ErrLayout,
				"Failed to write "+args[0], "Check the directory exists and is writable")
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s Exported %d tiles to %s\n",
			ui.SuccessStyle().Render(ui.SymbolSuccess), len(eng.Entries()), args[0])
		return nil
	}),
}

var layoutImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Replace the layout from a YAML or JSON file",
	Long: `Replace every saved tile with the ones in file. Display settings are
replaced too when the file has a display section.

YAML is what 'tilemon layout export' writes. JSON may be the same shape
({"tiles": [...]}) or a bare tile_configs array; comments and trailing commas
are allowed. Use - to read stdin.`,
	Args: cobra.ExactArgs(1),
	RunE: withEngine(func(cmd *cobra.Command, eng *layout.Engine, args []string) error {
		var data []byte
		var err error
		if args[0] == "-" {
			data, err = io.ReadAll(cmd.InOrStdin())
		} else {
			data, err = os.ReadFile(args[0])
		}
		if err != nil {
			return errors.WrapWithCode(err, errors.ErrLayout,
				"Failed to read "+args[0], "Check the path is correct")
		}
		return importLayout(cmd.OutOrStdout(), eng, args[0], data)
	}),
}

func init() {
	layoutCmd.AddCommand(layoutExportCmd, layoutImportCmd)
}

func exportLayout(w io.Writer, eng *layout.Engine) error {
	display := eng.Display()
	doc := layoutFile{
		Version: layoutFileVersion,
		Display: &display,
		Tiles:   eng.Entries(),
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return errors.WrapWithCode(err, errors.ErrLayout, "Failed to encode layout", "")
	}
	return enc.Close()
}

func importLayout(w io.Writer, eng *layout.Engine, name string, data []byte) error {
	doc, err := decodeLayout(name, data)
	if err != nil {
		return err
	}
	if doc.Version > layoutFileVersion {
		return errors.New(errors.ErrLayout,
			fmt.Sprintf("%s was written by a newer tilemon (format %d)", name, doc.Version),
			"Upgrade tilemon to import it")
	}

	if err := eng.ReplaceAll(doc.Tiles); err != nil {
		return err
	}
	if doc.Display != nil {
		if err := eng.SetDisplay(*doc.Display); err != nil {
			return err
		}
	}

	if machineMode {
		return WriteJSONSuccess(w, map[string]int{"tiles": len(doc.Tiles)})
	}
	fmt.Fprintf(w, "%s Imported %d tiles from %s\n", ui.SuccessStyle().Render(ui.SymbolSuccess), len(doc.Tiles), name)
	return nil
}

// decodeLayout reads JSON (by extension or a leading [ or {) or YAML.
func decodeLayout(name string, data []byte) (layoutFile, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return layoutFile{}, errors.New(errors.ErrLayout, name+" is empty", "")
	}

	isJSON := strings.EqualFold(filepath.Ext(name), ".json") ||
		trimmed[0] == '[' || trimmed[0] == '{'
	if isJSON {
		return decodeLayoutJSON(name, jsonc.ToJSON(trimmed))
	}
	return decodeLayoutYAML(name, trimmed)
}

func decodeLayoutJSON(name string, data []byte) (layoutFile, error) {
	var doc layoutFile
	var err error
	if bytes.HasPrefix(bytes.TrimSpace(data), []byte("[")) {
		err = json.Unmarshal(data, &doc.Tiles)
	} else {
		err = json.Unmarshal(data, &doc)
	}
	if err != nil {
		return doc, errors.WrapWithCode(err, errors.ErrLayout,
			"Cannot read "+name+" as a layout", "Expect {\"tiles\": [...]} or a tile array")
	}
	return doc, nil
}

// decodeLayoutYAML fills display fields missing from the file with defaults.
func decodeLayoutYAML(name string, data []byte) (layoutFile, error) {
	var raw struct {
		Version int            `yaml:"version"`
		Display yaml.Node      `yaml:"display"`
		Tiles   []layout.Entry `yaml:"tiles"`
	}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return layoutFile{}, errors.WrapWithCode(err, errors.ErrLayout,
			"Cannot read "+name+" as a layout", "Check the YAML syntax")
	}

	doc := layoutFile{Version: raw.Version, Tiles: raw.Tiles}
	// A zero Kind means the file has no display section.
	if raw.Display.Kind != 0 {
		d := layout.DefaultDisplayConfig()
		if err := raw.Display.Decode(&d); err != nil {
			return layoutFile{}, errors.WrapWithCode(err, errors.ErrLayout,
				"Invalid display section in "+name, "")
		}
		d = d.Sanitize()
		doc.Display = &d
	}
	return doc, nil
}
