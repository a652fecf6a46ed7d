// Command talentscout runs the TalentScout screening assistant as an
// interactive terminal chat. It owns the parts the conversation core does
// not: exit-keyword detection, persistence triggers, credentials, and the
// stdin/stdout loop.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"talentscout/pkg/config"
	"talentscout/pkg/interview"
	"talentscout/pkg/llm"
	"talentscout/pkg/llm/factory"
	"talentscout/pkg/logx"
	"talentscout/pkg/metrics"
	"talentscout/pkg/persistence"
	"talentscout/pkg/questions"
	"talentscout/pkg/templates"
)

// exitKeywords end the conversation when any of them appears in the
// candidate's input. Matching is lowercase substring; on a match the stage
// handlers never see the message at all.
var exitKeywords = []string{"bye", "exit", "quit", "goodbye", "end", "stop"}

type options struct {
	workDir     string
	provider    string
	model       string
	liveMode    bool
	exportPath  string
	anonymize   bool
	dumpMetrics bool
	initSecrets bool
	debug       bool
}

func main() {
	var opts options
	flag.StringVar(&opts.workDir, "workdir", ".", "Project directory (config and database live here)")
	flag.StringVar(&opts.provider, "provider", "", "Override the configured LLM provider")
	flag.StringVar(&opts.model, "model", "", "Override the configured model name")
	flag.BoolVar(&opts.liveMode, "live", false, "Use live API calls instead of the offline mock client")
	flag.StringVar(&opts.exportPath, "export", "", "Export saved interviews to a CSV file and exit")
	flag.BoolVar(&opts.anonymize, "anonymize", false, "Mask email and phone in the CSV export")
	flag.BoolVar(&opts.dumpMetrics, "metrics", false, "Print session metrics when the conversation ends")
	flag.BoolVar(&opts.initSecrets, "init-secrets", false, "Interactively store encrypted API credentials and exit")
	flag.BoolVar(&opts.debug, "debug", false, "Enable debug logging for all components")
	flag.Parse()

	if opts.debug {
		logx.SetDebug(true, nil)
	}

	logger := logx.NewLogger("main")
	if err := run(&opts, logger); err != nil {
		logger.Error("%v", err)
		os.Exit(1)
	}
}

func run(opts *options, logger *logx.Logger) error {
	if err := config.LoadConfig(opts.workDir); err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if opts.initSecrets {
		return initSecretsInteractive(opts.workDir)
	}

	cfg, err := config.GetConfig()
	if err != nil {
		return err
	}
	if opts.provider != "" {
		cfg.LLM.Provider = opts.provider
	}
	if opts.model != "" {
		cfg.LLM.Model = opts.model
	}

	if err := unlockSecrets(opts.workDir); err != nil {
		return err
	}

	dbPath := cfg.Storage.DatabasePath
	if !filepath.IsAbs(dbPath) {
		dbPath = filepath.Join(opts.workDir, dbPath)
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return fmt.Errorf("failed to create database directory: %w", err)
	}
	if err := persistence.Initialize(dbPath); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer func() { _ = persistence.Close() }()

	if opts.exportPath != "" {
		return exportInterviews(opts.exportPath, opts.anonymize, logger)
	}

	client, err := buildClient(&cfg, opts.liveMode)
	if err != nil {
		return err
	}

	recorder := metrics.NewRecorder()
	library, err := questions.DefaultLibrary()
	if err != nil {
		return err
	}
	renderer, err := templates.NewRenderer()
	if err != nil {
		return err
	}
	generator := questions.NewGenerator(library, client, renderer, recorder)
	assistant := interview.NewAssistant(client, generator, renderer, recorder, interview.Options{
		QuestionCount:         cfg.Interview.QuestionCount,
		TranscriptTokenBudget: cfg.Interview.TranscriptTokenBudget,
	})

	if err := runConversation(assistant, os.Stdin, os.Stdout, logger); err != nil {
		return err
	}

	if opts.dumpMetrics {
		dump, err := recorder.Dump()
		if err != nil {
			logger.Warn("failed to dump metrics: %v", err)
		} else {
			fmt.Fprint(os.Stderr, dump)
		}
		dumpSessionIssues(os.Stderr)
	}
	return nil
}

// dumpSessionIssues recaps buffered warnings and errors after the session.
// Live log lines interleave with the chat prompt, so the recap gives a clean
// view of anything that went wrong mid-conversation.
func dumpSessionIssues(w io.Writer) {
	for _, entry := range logx.RecentEntries("") {
		if entry.Level != string(logx.LevelWarn) && entry.Level != string(logx.LevelError) {
			continue
		}
		fmt.Fprintf(w, "%s [%s] %s: %s\n", entry.Timestamp, entry.Component, entry.Level, entry.Message)
	}
}

// buildClient picks the LLM client. Without -live the offline mock is used
// regardless of the configured provider, so the interview can be exercised
// with no credentials or network.
func buildClient(cfg *config.Config, liveMode bool) (llm.LLMClient, error) {
	llmCfg := llm.Config{
		Provider:    cfg.LLM.Provider,
		ModelName:   cfg.LLM.Model,
		Host:        cfg.LLM.Host,
		MaxTokens:   cfg.LLM.MaxTokens,
		Temperature: cfg.LLM.Temperature,
	}

	if !liveMode || cfg.LLM.Provider == config.ProviderMock {
		llmCfg.Provider = factory.ProviderMock
		return factory.NewClient(&llmCfg)
	}

	credential, err := config.GetAPIKey(cfg.LLM.Provider)
	if err != nil {
		return nil, err
	}
	if cfg.LLM.Provider == config.ProviderOllama {
		if llmCfg.Host == "" {
			llmCfg.Host = credential
		}
	} else {
		llmCfg.APIKey = credential
	}
	return factory.NewClient(&llmCfg)
}

// runConversation drives the turn loop: one line in, one reply out, until an
// exit keyword or EOF. Persistence fires when the interview completes or the
// candidate leaves, and a save failure never disturbs the conversation.
func runConversation(assistant *interview.Assistant, in io.Reader, out io.Writer, logger *logx.Logger) error {
	ctx := context.Background()
	saved := false

	fmt.Fprintf(out, "%s\n\n", assistant.Start())

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if isExitMessage(line) {
			fmt.Fprintf(out, "\n%s\n", assistant.EndConversation(ctx))
			saveInterview(assistant, &saved, logger)
			return scanner.Err()
		}

		fmt.Fprintf(out, "\n%s\n\n", assistant.ProcessMessage(ctx, line))

		if assistant.Stage() == interview.StageComplete {
			saveInterview(assistant, &saved, logger)
		}
	}

	// EOF without an explicit goodbye still persists what was collected.
	saveInterview(assistant, &saved, logger)
	return scanner.Err()
}

func isExitMessage(input string) bool {
	lowered := strings.ToLower(input)
	for _, keyword := range exitKeywords {
		if strings.Contains(lowered, keyword) {
			return true
		}
	}
	return false
}

// saveInterview persists the session once, best effort.
func saveInterview(assistant *interview.Assistant, saved *bool, logger *logx.Logger) {
	if *saved {
		return
	}

	snap := assistant.Snapshot()
	if len(snap.Fields) == 0 {
		return // nothing collected yet
	}

	rec := persistence.NewInterviewFromSnapshot(snap)
	if err := persistence.Ops().SaveInterview(context.Background(), rec); err != nil {
		logger.Warn("failed to save interview: %v", err)
		return
	}
	*saved = true
	logger.Info("interview saved: %s (%s)", rec.InterviewRef, rec.CandidateName)
}

func exportInterviews(path string, anonymize bool, logger *logx.Logger) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	defer func() { _ = f.Close() }()

	count, err := persistence.Ops().ExportCSV(context.Background(), f, anonymize)
	if err != nil {
		return logx.Wrap(err, "export failed")
	}
	logger.Info("exported %d interviews to %s", count, path)
	return nil
}
