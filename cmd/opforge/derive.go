package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"opforge/internal/catalog"
	"opforge/internal/diagfmt"
	"opforge/internal/driver"
	"opforge/internal/synth"
)

var deriveCmd = &cobra.Command{
	Use:   "derive [flags] <opforge.toml>",
	Short: "Derive the full operator catalog for a manifest",
	Long:  `Derive checks the manifest and prints every synthesized operator: signature, providing family, failure attribute, and the overload variant table`,
	Args:  cobra.ExactArgs(1),
	RunE:  runDerive,
}

func init() {
	deriveCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	deriveCmd.Flags().Int("jobs", 0, "max parallel workers (0=auto)")
	deriveCmd.Flags().Bool("variants", false, "include the overload variant table per operator")
	deriveCmd.Flags().Bool("cache", false, "write the derived catalog to the disk cache")
	deriveCmd.Flags().String("cache-dir", "", "override the cache directory (default XDG cache)")
}

func runDerive(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	showVariants, err := cmd.Flags().GetBool("variants")
	if err != nil {
		return fmt.Errorf("failed to get variants flag: %w", err)
	}
	writeCache, err := cmd.Flags().GetBool("cache")
	if err != nil {
		return fmt.Errorf("failed to get cache flag: %w", err)
	}
	cacheDir, err := cmd.Flags().GetString("cache-dir")
	if err != nil {
		return fmt.Errorf("failed to get cache-dir flag: %w", err)
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}

	manifestPath := args[0]
	outcome, err := driver.Run(context.Background(), manifestPath, driver.Options{
		MaxDiagnostics: maxDiagnostics,
		Jobs:           jobs,
	})
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if outcome.HasErrors() {
		bag := outcome.Merged(maxDiagnostics)
		diagfmt.Pretty(os.Stderr, bag, diagfmt.PrettyOpts{Color: useColor(cmd), ShowNotes: true})
		cmd.SilenceUsage = true
		return fmt.Errorf("derivation failed: %s", bag.Summary())
	}

	catalogs := make([]*synth.Catalog, 0, len(outcome.Results))
	for _, r := range outcome.Results {
		catalogs = append(catalogs, r.Catalog)
	}
	content, err := os.ReadFile(manifestPath)
	if err != nil {
		return err
	}
	payload, err := catalog.Build(manifestPath, catalog.DigestBytes(content), catalogs)
	if err != nil {
		return err
	}

	switch format {
	case "pretty":
		renderPayload(out, payload, showVariants)
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(payload); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unsupported format %q (must be pretty or json)", format)
	}

	if writeCache {
		cache, err := openCache(cacheDir)
		if err != nil {
			return err
		}
		if err := cache.Put(payload.Digest, payload); err != nil {
			return fmt.Errorf("failed to write disk cache: %w", err)
		}
	}
	return nil
}

func openCache(dir string) (*catalog.DiskCache, error) {
	if dir != "" {
		return catalog.OpenDiskCacheAt(dir)
	}
	return catalog.OpenDiskCache("opforge")
}

func renderPayload(out io.Writer, payload *catalog.Payload, showVariants bool) {
	for _, tr := range payload.Types {
		fmt.Fprintf(out, "type %s (%d operators)\n", tr.Name, len(tr.Ops))
		for _, op := range tr.Ops {
			fmt.Fprintf(out, "  %-24s %-24s %s\n", op.Signature, op.Family, op.Effect)
			if !showVariants {
				continue
			}
			for _, v := range op.Variants {
				fmt.Fprintf(out, "      (%s, %s) %s -> %s\n", v.Left, v.Right, v.Strategy, v.Result)
			}
		}
	}
	fmt.Fprintf(out, "%d operator(s) derived\n", payload.OpCount)
}
