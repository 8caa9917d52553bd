package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sumireworks/ybarc/internal/keyprompt"
	"github.com/sumireworks/ybarc/pkg/archive"
	"github.com/sumireworks/ybarc/pkg/gamekeys"
)

var extractCmd = &cobra.Command{
	Use:   "extract <archive> <out_dir>",
	Short: "Extract members from a v1/v2/v3 asset archive",
	Long: `Extract members from a visual-novel asset archive into out_dir,
auto-detecting which of the three known index layouts (v1, v2, v3) the
archive uses, and writing an index.json manifest alongside the extracted
files.

If the archive's stem ends "_data" (a script-bearing archive), you'll be
prompted to choose a decryption key from the gamekeys catalogue.

Examples:
  ybarc extract SCENE01.ARC data/scene01
  ybarc extract SCENE01_DATA.ARC data/scene01`,
	Args: cobra.ExactArgs(2),
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	archivePath, outDir := args[0], args[1]

	stem := strings.TrimSuffix(filepath.Base(archivePath), filepath.Ext(archivePath))

	var key []byte
	if strings.HasSuffix(strings.ToLower(stem), "_data") {
		catalogue, err := gamekeys.Load(viper.GetString("keys_file"))
		if err != nil {
			return fmt.Errorf("load gamekeys: %w", err)
		}
		key, err = keyprompt.Select(os.Stdin, os.Stdout, catalogue)
		if err != nil {
			return fmt.Errorf("select key: %w", err)
		}
	}

	m, err := archive.Extract(archivePath, archive.ExtractOptions{
		OutputDir: outDir,
		Key:       key,
	})
	if err != nil {
		return fmt.Errorf("extract %s: %w", archivePath, err)
	}

	fmt.Printf("Extracted %d files (%s) to %s\n", len(m.Files), m.Version, outDir)
	return nil
}
