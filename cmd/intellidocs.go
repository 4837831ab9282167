package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"regexp"
	"syscall"

	"github.com/pratm1304/IntelliDocs-Ai/config"
	"github.com/pratm1304/IntelliDocs-Ai/intellidocs"
	"github.com/pratm1304/IntelliDocs-Ai/llm"
	u "github.com/pratm1304/IntelliDocs-Ai/utils"
	log "github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var cmdFlags struct {
	output      string
	ignoreList  []string
	summaryOnly bool
}

var IntelliDocsVersion = "dev"

var remoteURL = regexp.MustCompile(`^(https?|git|ssh)://|^git@`)

var rootCmd = &cobra.Command{
	Use:     "intellidocs [directory or repository URL]",
	Short:   "Generate a README for a project directory or git repository with Gemini.",
	Version: IntelliDocsVersion,
	Args:    cobra.ExactArgs(1),
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		u.InitLogger(cfg.LogLevel, cfg.LogFormat)
		appConfig = cfg
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		if err := generate(ctx, args[0]); err != nil {
			u.PrintError(err.Error())
			os.Exit(1)
		}
	},
}

// appConfig is populated before any subcommand runs
var appConfig *config.Config

func generate(ctx context.Context, target string) error {
	var model llm.Client
	if cmdFlags.summaryOnly {
		// stdout carries only the summary so it can be piped
		u.SetOutput(os.Stderr)
		defer u.SetOutput(nil)
		model = llm.NewFakeClient("")
	} else {
		if err := appConfig.RequireAPIKey(); err != nil {
			return err
		}
		gemini, err := llm.NewGeminiClient(ctx, appConfig.GeminiAPIKey, appConfig.GeminiModel)
		if err != nil {
			return fmt.Errorf("failed to create model client: %w", err)
		}
		model = gemini
	}
	defer model.Close()

	svc, err := newService(model, cmdFlags.ignoreList)
	if err != nil {
		return err
	}

	u.PrintStep("source", target)
	var summary string
	if remoteURL.MatchString(target) {
		summary, err = svc.SummarizeSource(ctx, intellidocs.Source{RepoURL: target})
	} else {
		summary, err = svc.SummarizeDirectory(target)
	}
	if err != nil {
		return err
	}
	if cmdFlags.summaryOnly {
		fmt.Print(summary)
		return nil
	}

	u.PrintStep("model", model.Name())
	readme, err := svc.GenerateReadmeFromSummary(ctx, summary)
	if err != nil {
		return err
	}
	if err := os.WriteFile(cmdFlags.output, []byte(readme), 0o644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	log.Debug().Str("output", cmdFlags.output).Int("bytes", len(readme)).Msg("wrote README")
	u.PrintSuccess("README written to " + cmdFlags.output)
	return nil
}

// newService builds the service from appConfig; extra ignores are appended to the configured ones
func newService(model llm.Client, extraIgnores []string) (*intellidocs.Service, error) {
	stager, err := intellidocs.NewStager(intellidocs.StagerConfig{
		ReposDir:    appConfig.ReposDir,
		UploadsDir:  appConfig.UploadsDir,
		GitHubToken: appConfig.GitHubToken,
	})
	if err != nil {
		return nil, err
	}
	ignores := append(append([]string{}, appConfig.IgnorePatterns...), extraIgnores...)
	summarizer := intellidocs.NewSummarizer(intellidocs.SummarizerConfig{
		MaxBytes:          appConfig.MaxSummaryBytes,
		AdditionalIgnores: ignores,
	})
	return intellidocs.NewService(model, stager, summarizer), nil
}

func Execute() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.SetHelpCommand(&cobra.Command{Hidden: true})
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().StringVarP(&cmdFlags.output, "output", "o", "README.generated.md", "File to write the generated README to")
	rootCmd.Flags().BoolVar(&cmdFlags.summaryOnly, "summary-only", false, "Print the project summary without calling the model")
	rootCmd.PersistentFlags().StringSliceVarP(&cmdFlags.ignoreList, "ignore", "i", []string{}, "Additional patterns to ignore (e.g., 'tests,docs')")
}
