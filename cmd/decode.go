package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"reflect"
	"sort"
	"strings"

	"tgwire/pkg/decode"
	"tgwire/pkg/encode"
	"tgwire/pkg/method"
	"tgwire/pkg/schema"
	"tgwire/pkg/types"
	"tgwire/pkg/ui/inspect"

	"github.com/spf13/cobra"
)

var (
	decodeTypeName string
	decodeAsJSON   bool
)

// decodeTargets maps --type values to the type a payload decodes into.
var decodeTargets = map[string]reflect.Type{
	"update":      reflect.TypeFor[types.Update](),
	"message":     reflect.TypeFor[types.Message](),
	"user":        reflect.TypeFor[types.User](),
	"chat":        reflect.TypeFor[types.Chat](),
	"chat_member": reflect.TypeFor[types.ChatMember](),
}

var decodeCmd = &cobra.Command{
	Use:   "decode [file]",
	Short: "Decode a Bot API payload and print the typed result",
	Long:  "Reads a JSON payload from a file or stdin, decodes it into the chosen Bot API type, and renders it. Decode failures print their category and field path.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		input := cmd.InOrStdin()
		if len(args) == 1 {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open payload: %w", err)
			}
			defer f.Close()
			input = f
		}

		table, err := method.Schema()
		if err != nil {
			return fmt.Errorf("build schema: %w", err)
		}

		return runDecode(cmd.OutOrStdout(), input, table, decodeTypeName, decodeAsJSON)
	},
}

func init() {
	rootCmd.AddCommand(decodeCmd)
	decodeCmd.Flags().StringVarP(&decodeTypeName, "type", "t", "update", "payload type: "+strings.Join(decodeTargetNames(), ", "))
	decodeCmd.Flags().BoolVar(&decodeAsJSON, "json", false, "print the re-encoded wire JSON instead of a tree")
}

// runDecode decodes one payload from r and writes it to w. A decode failure
// is rendered to w and also returned.
func runDecode(w io.Writer, r io.Reader, table *schema.Table, typeName string, asJSON bool) error {
	target, ok := decodeTargets[strings.ToLower(strings.TrimSpace(typeName))]
	if !ok {
		return fmt.Errorf("unknown type %q (want one of %s)", typeName, strings.Join(decodeTargetNames(), ", "))
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("read payload: %w", err)
	}

	renderer := inspect.New()
	result, err := decode.New(table).DecodeJSON(data, target)
	if err != nil {
		fmt.Fprintln(w, renderer.Error(err))
		return fmt.Errorf("decode %s: %w", typeName, err)
	}

	enc := encode.New(table)
	if asJSON {
		raw, err := enc.JSON(result)
		if err != nil {
			return fmt.Errorf("encode %s: %w", typeName, err)
		}
		var out bytes.Buffer
		if err := json.Indent(&out, raw, "", "  "); err != nil {
			return fmt.Errorf("format json: %w", err)
		}
		fmt.Fprintln(w, out.String())
		return nil
	}

	if update, ok := result.(types.Update); ok {
		rendered, err := renderer.Update(enc, update)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, rendered)
		return nil
	}

	tree, err := enc.Value(result)
	if err != nil {
		return fmt.Errorf("encode %s: %w", typeName, err)
	}
	fmt.Fprintln(w, renderer.Tree(typeName, reflect.TypeOf(result).Name(), tree))

	return nil
}

func decodeTargetNames() []string {
	names := make([]string, 0, len(decodeTargets))
	for name := range decodeTargets {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}
