package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/sumireworks/ybarc/pkg/archive"
)

var packCmd = &cobra.Command{
	Use:   "pack <in_dir> <archive>",
	Short: "Pack a directory's index.json manifest into an asset archive",
	Long: `Pack the files named by in_dir/index.json back into a single
asset archive, in the version layout (v1, v2, or v3) the manifest
declares.

Examples:
  ybarc pack data/scene01 SCENE01.ARC`,
	Args: cobra.ExactArgs(2),
	RunE: runPack,
}

func init() {
	rootCmd.AddCommand(packCmd)
}

func runPack(cmd *cobra.Command, args []string) error {
	inDir, archivePath := args[0], args[1]
	manifestPath := filepath.Join(inDir, "index.json")

	if err := archive.Pack(archivePath, archive.PackOptions{
		SourceDir:    inDir,
		ManifestPath: manifestPath,
	}); err != nil {
		return fmt.Errorf("pack %s: %w", inDir, err)
	}

	fmt.Printf("Packed %s -> %s\n", inDir, archivePath)
	return nil
}
