package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"jsondelta"
)

func readValue(path string) (jsondelta.Value, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return jsondelta.Value{}, fmt.Errorf("reading %s: %w", path, err)
	}
	var v jsondelta.Value
	if err := json.Unmarshal(b, &v); err != nil {
		return jsondelta.Value{}, fmt.Errorf("parsing %s: %w", path, err)
	}
	return v, nil
}

func readDelta(path string) (jsondelta.Delta, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	var d jsondelta.Delta
	if err := json.Unmarshal(b, &d); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := jsondelta.ValidateDelta(d); err != nil {
		return nil, fmt.Errorf("validating %s: %w", path, err)
	}
	return d, nil
}

func readPolicy(path string) (*jsondelta.Policy, error) {
	if path == "" {
		return nil, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	var p jsondelta.Policy
	if err := json.Unmarshal(b, &p); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &p, nil
}

func writeJSON(v interface{}, pretty bool) error {
	var b []byte
	var err error
	if pretty {
		b, err = json.MarshalIndent(v, "", "  ")
	} else {
		b, err = json.Marshal(v)
	}
	if err != nil {
		return err
	}
	fmt.Println(string(b))
	return nil
}

func newDiffCmd() *cobra.Command {
	var pretty bool
	var policyPath string
	cmd := &cobra.Command{
		Use:   "diff <a.json> <b.json>",
		Short: "Compute the delta that turns a into b",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := readValue(args[0])
			if err != nil {
				return err
			}
			b, err := readValue(args[1])
			if err != nil {
				return err
			}
			policy, err := readPolicy(policyPath)
			if err != nil {
				return err
			}
			log.WithFields(logrus.Fields{"a": args[0], "b": args[1], "policy": policyPath}).Debug("computing diff")
			result := jsondelta.Diff(a, b, policy)

			if pretty {
				return jsondelta.FormatPretty(os.Stdout, result, true)
			}
			return writeJSON(result, false)
		},
	}
	cmd.Flags().BoolVar(&pretty, "pretty", false, "render a human-readable report instead of JSON")
	cmd.Flags().StringVar(&policyPath, "policy", "", "path to a policy JSON file controlling diff dispatch")
	return cmd
}

func newPatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "patch <a.json> <delta.json>",
		Short: "Apply an object delta produced by diff to an object value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := readValue(args[0])
			if err != nil {
				return err
			}
			d, err := readDelta(args[1])
			if err != nil {
				return err
			}
			log.WithField("value", args[0]).Debug("applying delta")
			result, err := jsondelta.ApplyDiff(a, jsondelta.Operation{Op: jsondelta.OpObject, V: d})
			if err != nil {
				return err
			}
			return writeJSON(result, true)
		},
	}
	return cmd
}

func newTransformCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "transform <base.json> <da.json> <db.json>",
		Short: "Rebase delta da so it may be applied after db against base",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			base, err := readValue(args[0])
			if err != nil {
				return err
			}
			da, err := readDelta(args[1])
			if err != nil {
				return err
			}
			db, err := readDelta(args[2])
			if err != nil {
				return err
			}
			baseObj, err := jsondelta.RequireObject(base)
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			log.Debug("transforming delta")
			rebased := jsondelta.TransformObjectDiff(da, db, baseObj, nil)
			return writeJSON(rebased, true)
		},
	}
	return cmd
}
