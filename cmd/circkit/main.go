// Command circkit builds, evaluates, masks, serializes and reports on
// circuits described by a small JSON IR, the Go port of the teacher's
// cmd/z80opt cobra CLI retargeted from Z80 instruction sequences to circuit
// graphs.
package main

import (
	"encoding/json"
	"fmt"
	"math/big"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/circkit/circkit/pkg/bytecode"
	"github.com/circkit/circkit/pkg/circuit"
	"github.com/circkit/circkit/pkg/report"
	"github.com/circkit/circkit/pkg/transform"
	"github.com/circkit/circkit/pkg/verify"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "circkit",
		Short: "circkit — build, evaluate, mask and serialize computation circuits",
	}

	buildCmd := &cobra.Command{
		Use:   "build <circuit.json>",
		Short: "Construct a circuit from a JSON IR and print its node-count report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := loadCircuit(args[0])
			if err != nil {
				return err
			}
			printStats(c, args[0])
			return nil
		},
	}

	evalCmd := &cobra.Command{
		Use:   "eval <circuit.json> <inputs...>",
		Short: "Build a circuit and evaluate it on the given inputs",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := loadCircuit(args[0])
			if err != nil {
				return err
			}
			rawInputs := args[1:]
			if len(rawInputs) != len(c.Inputs()) {
				return fmt.Errorf("circuit declares %d inputs, got %d", len(c.Inputs()), len(rawInputs))
			}
			inputs := make([]any, len(rawInputs))
			for i, s := range rawInputs {
				v, err := parseInput(c.Flavor, s)
				if err != nil {
					return fmt.Errorf("input %d (%q): %w", i, s, err)
				}
				inputs[i] = v
			}
			outputs, err := c.Evaluate(inputs)
			if err != nil {
				return err
			}
			for i, v := range outputs {
				fmt.Printf("out[%d] = %v\n", i, v)
			}
			return nil
		},
	}

	var maskOrder int
	var maskOut string
	maskCmd := &cobra.Command{
		Use:   "mask <circuit.json>",
		Short: "Apply ISW masking at the given order and verify soundness",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := loadCircuit(args[0])
			if err != nil {
				return err
			}
			dst := circuit.New(c.Flavor, c.Ring, c.ConstMgr, c.Opts)
			if _, err := transform.ISW(c, dst, maskOrder); err != nil {
				return fmt.Errorf("masking: %w", err)
			}
			fmt.Printf("masked circuit: order=%d shares=%d nodes=%d\n", maskOrder, maskOrder+1, len(dst.Nodes()))

			if len(c.Inputs()) <= verify.MaxExhaustiveInputs {
				ok, err := verify.CheckISW(c, dst, maskOrder, 8)
				if err != nil {
					return fmt.Errorf("verifying masked circuit: %w", err)
				}
				if !ok {
					return fmt.Errorf("masked circuit failed soundness check")
				}
				fmt.Println("masking soundness: OK")
			}

			if maskOut != "" {
				return saveCircuitReport(maskOut, dst)
			}
			return nil
		},
	}
	maskCmd.Flags().IntVar(&maskOrder, "order", 1, "ISW masking order")
	maskCmd.Flags().StringVar(&maskOut, "out", "", "Write the masked circuit's node-count report to this JSON file")

	var serializeOut string
	var bytesOp, bytesAddr int
	serializeCmd := &cobra.Command{
		Use:   "serialize <circuit.json>",
		Short: "Build a boolean circuit and emit its bytecode program",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := loadCircuit(args[0])
			if err != nil {
				return err
			}
			cfg := bytecode.Config{BytesOp: bytesOp, BytesAddr: bytesAddr, LittleEndian: true}
			data, err := bytecode.Serialize(c, cfg)
			if err != nil {
				return err
			}
			if serializeOut == "" {
				return fmt.Errorf("--out is required")
			}
			if err := os.WriteFile(serializeOut, data, 0o644); err != nil {
				return err
			}
			fmt.Printf("wrote %d bytes to %s\n", len(data), serializeOut)
			return nil
		},
	}
	serializeCmd.Flags().StringVar(&serializeOut, "out", "", "Output bytecode file path")
	serializeCmd.Flags().IntVar(&bytesOp, "bytes-op", 1, "Width in bytes of the opcode field")
	serializeCmd.Flags().IntVar(&bytesAddr, "bytes-addr", 2, "Width in bytes of each address field")

	statsCmd := &cobra.Command{
		Use:   "stats <circuit.json>",
		Short: "Print per-opcode node counts for a circuit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := loadCircuit(args[0])
			if err != nil {
				return err
			}
			printStats(c, args[0])
			return nil
		},
	}

	rootCmd.AddCommand(buildCmd, evalCmd, maskCmd, serializeCmd, statsCmd)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadCircuit(path string) (*circuit.Circuit, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var doc circuit.Document
	if err := json.NewDecoder(f).Decode(&doc); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return circuit.Build(doc)
}

func printStats(c *circuit.Circuit, label string) {
	t := report.NewTable()
	t.AddCircuit(label, c)
	_ = t.WriteJSON(os.Stdout)
}

func saveCircuitReport(path string, c *circuit.Circuit) error {
	t := report.NewTable()
	t.AddCircuit(path, c)
	return report.SaveSnapshot(path, t)
}

func parseInput(flavor circuit.Flavor, s string) (any, error) {
	switch flavor {
	case circuit.Boolean:
		switch s {
		case "0", "false":
			return false, nil
		case "1", "true":
			return true, nil
		default:
			return nil, fmt.Errorf("boolean input must be 0/1/true/false")
		}
	case circuit.Bitwise:
		v, err := strconv.ParseUint(s, 0, 64)
		if err != nil {
			return nil, err
		}
		return int64(v), nil
	default:
		v, ok := new(big.Int).SetString(s, 0)
		if !ok {
			return nil, fmt.Errorf("not a valid integer")
		}
		return v, nil
	}
}
