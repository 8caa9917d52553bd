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

var encodeImageCmd = &cobra.Command{
	Use:   "encode-image <in_dir> <out_dir>",
	Short: "Encode every .png image in a directory to .yb",
	Long: `Encode every *.png file in in_dir to a *.yb file in out_dir,
selecting a 32-bit (RGBA) or 24-bit (RGB) pixel format from each PNG's
own channel count; the delta predictor is applied to 32-bit images
only. Each file is
encoded on its own worker; a failure is logged and does not stop the
batch.

Examples:
  ybarc encode-image png/backgrounds raw/backgrounds`,
	Args: cobra.ExactArgs(2),
	RunE: runEncodeImage,
}

func init() {
	rootCmd.AddCommand(encodeImageCmd)
}

func runEncodeImage(cmd *cobra.Command, args []string) error {
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
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".png") {
			continue
		}
		name := entry.Name()
		p.Go(func() {
			if err := encodeOneImage(filepath.Join(inDir, name), filepath.Join(outDir, strings.TrimSuffix(name, filepath.Ext(name))+".yb")); err != nil {
				slog.Warn("skipping image", "file", name, "error", err)
				return
			}
			converted.Add(1)
		})
	}
	p.Wait()

	if viper.GetBool("verbose") {
		fmt.Printf("Encoded %d images\n", converted.Load())
	}
	return nil
}

func encodeOneImage(inPath, outPath string) error {
	f, err := os.Open(inPath)
	if err != nil {
		return fmt.Errorf("open %s: %w", inPath, err)
	}
	pix, width, height, channels, err := imgexport.DecodePNG(f)
	f.Close()
	if err != nil {
		return fmt.Errorf("decode png %s: %w", inPath, err)
	}

	// spec's CLI selects the delta predictor bit by input channel count:
	// on for 32-bit (RGBA) sources, off for 24-bit (RGB) ones.
	flag := byte(0x00)
	if channels == 4 {
		flag = imgcodec.FlagDelta
	}

	data, err := imgcodec.Encode(width, height, channels, pix, flag)
	if err != nil {
		return fmt.Errorf("encode %s: %w", inPath, err)
	}

	if err := os.WriteFile(outPath, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", outPath, err)
	}
	return nil
}
