package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/sourcegraph/conc/pool"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sumireworks/ybarc/pkg/imgcodec"
	"github.com/sumireworks/ybarc/pkg/imgexport"
)

var decodeImageCmd = &cobra.Command{
	Use:   "decode-image <in_dir> <out_dir>",
	Short: "Decode every .yb image in a directory to PNG",
	Long: `Decode every *.yb file in in_dir to a *.png file in out_dir. Each
file is decoded on its own worker; a corrupt image is logged and does
not stop the batch.

Examples:
  ybarc decode-image raw/backgrounds png/backgrounds`,
	Args: cobra.ExactArgs(2),
	RunE: runDecodeImage,
}

func init() {
	rootCmd.AddCommand(decodeImageCmd)
}

func runDecodeImage(cmd *cobra.Command, args []string) error {
	inDir, outDir := args[0], args[1]

	if err := os.MkdirAll(outDir, 0755); err != nil {
		return fmt.Errorf("create %s: %w", outDir, err)
	}

	entries, err := os.ReadDir(inDir)
	if err != nil {
		return fmt.Errorf("read %s: %w", inDir, err)
	}

	p := pool.New().WithMaxGoroutines(8)
	var converted atomic.Int64
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".yb") {
			continue
		}
		name := entry.Name()
		p.Go(func() {
			if err := decodeOneImage(filepath.Join(inDir, name), filepath.Join(outDir, strings.TrimSuffix(name, filepath.Ext(name))+".png")); err != nil {
				slog.Warn("skipping image", "file", name, "error", err)
				return
			}
			converted.Add(1)
		})
	}
	p.Wait()

	if viper.GetBool("verbose") {
		fmt.Printf("Decoded %d images\n", converted.Load())
	}
	return nil
}

func decodeOneImage(inPath, outPath string) error {
	data, err := os.ReadFile(inPath)
	if err != nil {
		return fmt.Errorf("read %s: %w", inPath, err)
	}

	img, err := imgcodec.Decode(data)
	if err != nil {
		return fmt.Errorf("decode %s: %w", inPath, err)
	}

	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create %s: %w", outPath, err)
	}
	defer out.Close()

	if err := imgexport.EncodePNG(out, img.Pixels, img.Width, img.Height, img.Channels); err != nil {
		return fmt.Errorf("encode png %s: %w", outPath, err)
	}
	return nil
}
