package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zhouzirui/candidate-desk/backend/internal/model/candidate"
	candidateService "github.com/zhouzirui/candidate-desk/backend/internal/service/candidate"
)

type options struct {
	seedFile string
}

// validateReport 汇总种子文件中的可疑数据
type validateReport struct {
	Entries         int      `json:"entries"`
	DuplicateEmails []string `json:"duplicateEmails"`
	UnknownDomains  []string `json:"unknownDomains"`
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:          "candidatectl",
		Short:        "Inspect candidate seed data offline",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&opts.seedFile, "seed", os.Getenv("CANDIDATES_SEED_FILE"),
		"YAML seed file (empty uses the embedded seed)")

	root.AddCommand(
		newValidateCmd(opts),
		newStatsCmd(opts),
		newSearchCmd(opts),
	)
	return root
}

func newValidateCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Report duplicate emails and addresses without a domain",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			entries, err := candidate.LoadSeed(opts.seedFile)
			if err != nil {
				return err
			}

			report := validateReport{
				Entries:         len(entries),
				DuplicateEmails: []string{},
				UnknownDomains:  []string{},
			}
			seen := make(map[string]int, len(entries))
			for _, entry := range entries {
				key := strings.ToLower(entry.Email)
				seen[key]++
				if seen[key] == 2 {
					report.DuplicateEmails = append(report.DuplicateEmails, entry.Email)
				}
				if candidate.ExtractDomain(entry.Email) == candidate.UnknownDomain {
					report.UnknownDomains = append(report.UnknownDomains, entry.Email)
				}
			}
			return writeJSON(cmd.OutOrStdout(), report)
		},
	}
}

func newStatsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print totals, status counts and top domains",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := loadService(opts.seedFile)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), svc.Stats(cmd.Context()))
		},
	}
}

func newSearchCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Search candidates by email or domain",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := loadService(opts.seedFile)
			if err != nil {
				return err
			}
			result, err := svc.Search(cmd.Context(), args[0])
			if errors.Is(err, candidateService.ErrQueryTooShort) {
				return fmt.Errorf("query must be at least %d characters", candidateService.MinSearchQueryLen)
			}
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), result)
		},
	}
}

func loadService(seedFile string) (*candidateService.Service, error) {
	entries, err := candidate.LoadSeed(seedFile)
	if err != nil {
		return nil, err
	}
	return candidateService.NewService(candidate.NewMemoryStore(entries)), nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
