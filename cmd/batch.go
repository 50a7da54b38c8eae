package main

import (
	"bufio"
	"encoding/json"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	batchFile        string
	batchConcurrency int
	batchNoSave      bool
)

var batchCmd = &cobra.Command{
	Use:   "batch [url...]",
	Short: "Batch enrich companies from website URLs",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		urls := args
		if batchFile != "" {
			fileURLs, err := readURLFile(batchFile)
			if err != nil {
				return err
			}
			urls = append(urls, fileURLs...)
		}
		if len(urls) == 0 {
			return eris.New("no URLs given: pass them as arguments or via --file")
		}

		env, err := initEnrichment(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		concurrency := batchConcurrency
		if concurrency == 0 {
			concurrency = cfg.Batch.MaxConcurrentCompanies
		}

		result := env.Assembler.EnrichBatch(ctx, urls, concurrency)

		saved := 0
		for i := range result.Profiles {
			p := &result.Profiles[i]
			if batchNoSave {
				continue
			}
			if _, err := env.Store.UpsertProfile(ctx, p); err != nil {
				zap.L().Error("store profile failed",
					zap.String("company", p.CompanyName),
					zap.Error(err))
				continue
			}
			saved++
		}

		zap.L().Info("batch complete",
			zap.Int("requested", len(urls)),
			zap.Int("profiles", len(result.Profiles)),
			zap.Int("failed", len(result.Errors)),
			zap.Int("saved", saved),
		)

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	},
}

func readURLFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "open url file %s", path)
	}
	defer f.Close()

	var urls []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		urls = append(urls, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, eris.Wrapf(err, "read url file %s", path)
	}
	return urls, nil
}

func init() {
	batchCmd.Flags().StringVar(&batchFile, "file", "", "file with one website URL per line")
	batchCmd.Flags().IntVar(&batchConcurrency, "concurrency", 0, "max companies processed concurrently (default from config)")
	batchCmd.Flags().BoolVar(&batchNoSave, "no-save", false, "print results without storing them")
	rootCmd.AddCommand(batchCmd)
}
