// Command fieldsetctl loads `.proto` files with the registry package and
// inspects or decodes messages against the resulting descriptors, without
// any generated code.
package main

import (
	"encoding/hex"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/modulexcite/protofield/descriptor"
	"github.com/modulexcite/protofield/dynamic"
	"github.com/modulexcite/protofield/fieldset"
	"github.com/modulexcite/protofield/registry"
)

var protoDirs []string

func main() {
	root := &cobra.Command{
		Use:   "fieldsetctl",
		Short: "Inspect and decode protobuf wire data against .proto descriptors",
	}
	root.PersistentFlags().StringSliceVarP(&protoDirs, "proto_path", "I", []string{"."}, "directories to search for imports")

	root.AddCommand(describeCmd(), decodeCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func describeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "describe <file.proto> <message.type>",
		Short: "Print the fields of a message type declared in a .proto file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			r := registry.New(protoDirs...)
			if err := r.LoadFile(args[0]); err != nil {
				return err
			}
			desc := r.FindMessageByName(args[1])
			if desc == nil {
				return fmt.Errorf("message type %q not found in %s", args[1], args[0])
			}
			printDescriptor(cmd, desc)
			return nil
		},
	}
}

func printDescriptor(cmd *cobra.Command, desc *descriptor.MessageDescriptor) {
	fmt.Fprintf(cmd.OutOrStdout(), "%s\n", desc.FullName())
	for _, f := range desc.Fields() {
		label := "optional"
		switch {
		case f.IsRequired():
			label = "required"
		case f.IsRepeated():
			label = "repeated"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "  %s %s %s = %d\n", label, f.FieldType(), f.Name(), f.Number())
	}
}

func decodeCmd() *cobra.Command {
	var hexInput string
	cmd := &cobra.Command{
		Use:   "decode <file.proto> <message.type>",
		Short: "Decode hex-encoded wire bytes as an instance of a message type",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := hex.DecodeString(hexInput)
			if err != nil {
				return fmt.Errorf("decoding --data as hex: %w", err)
			}
			r := registry.New(protoDirs...)
			if err := r.LoadFile(args[0]); err != nil {
				return err
			}
			desc := r.FindMessageByName(args[1])
			if desc == nil {
				return fmt.Errorf("message type %q not found in %s", args[1], args[0])
			}
			b := dynamic.NewBuilder(desc)
			if err := b.MergeFromBytes(data, r); err != nil {
				return err
			}
			msg, err := b.Build()
			if err != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "warning: %v (showing partial decode)\n", err)
				msg = b.BuildPartial()
			}
			printMessage(cmd, desc, msg.AllFields())
			return nil
		},
	}
	cmd.Flags().StringVar(&hexInput, "data", "", "hex-encoded wire bytes to decode")
	cmd.MarkFlagRequired("data")
	return cmd
}

func printMessage(cmd *cobra.Command, desc *descriptor.MessageDescriptor, fs *fieldset.FieldSet) {
	for _, f := range desc.Fields() {
		if f.IsRepeated() {
			n, err := fs.GetRepeatedCount(f)
			if err != nil {
				continue
			}
			for i := 0; i < n; i++ {
				v, err := fs.GetRepeated(f, i)
				if err != nil {
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s[%d] = %s\n", f.Name(), i, formatValue(v))
			}
			continue
		}
		has, err := fs.Has(f)
		if err != nil || !has {
			continue
		}
		v, err := fs.Get(f)
		if err != nil {
			continue
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", f.Name(), formatValue(v))
	}
}

func formatValue(v fieldset.Value) string {
	switch v.MappedType() {
	case descriptor.MappedInt32:
		return fmt.Sprintf("%d", v.Int32())
	case descriptor.MappedInt64:
		return fmt.Sprintf("%d", v.Int64())
	case descriptor.MappedUint32:
		return fmt.Sprintf("%d", v.Uint32())
	case descriptor.MappedUint64:
		return fmt.Sprintf("%d", v.Uint64())
	case descriptor.MappedFloat:
		return fmt.Sprintf("%v", v.Float32())
	case descriptor.MappedDouble:
		return fmt.Sprintf("%v", v.Float64())
	case descriptor.MappedBool:
		return fmt.Sprintf("%v", v.Bool())
	case descriptor.MappedString:
		return v.String()
	case descriptor.MappedBytes:
		return hex.EncodeToString(v.Bytes())
	case descriptor.MappedEnum:
		if e := v.Enum(); e != nil {
			return e.Name()
		}
		return "<unknown enum>"
	case descriptor.MappedMessage:
		return "<message>"
	default:
		return "<unknown>"
	}
}
