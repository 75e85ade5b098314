package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"booking-orchestrator/internal/adapter/llm"
	"booking-orchestrator/internal/adapter/repository"
	"booking-orchestrator/internal/di"
	"booking-orchestrator/internal/infra"
	"booking-orchestrator/internal/infra/config"
	"booking-orchestrator/internal/infra/httpclient"
	"booking-orchestrator/internal/infra/logger"
	"booking-orchestrator/internal/usecase"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var batchConcurrency int

func main() {
	_ = godotenv.Load()

	root := &cobra.Command{
		Use:   "ask [question]",
		Short: "Answer a hospitality booking question",
		Args:  cobra.ExactArgs(1),
		RunE:  runAsk,
	}

	sqlCmd := &cobra.Command{
		Use:   "sql",
		Short: "Work with generated SQL directly",
	}
	sqlCmd.AddCommand(
		&cobra.Command{
			Use:   "generate [question]",
			Short: "Generate the SQL for a question without executing it",
			Args:  cobra.ExactArgs(1),
			RunE:  runSQLGenerate,
		},
		&cobra.Command{
			Use:   "execute [query]",
			Short: "Execute a SQL query verbatim and print the result",
			Args:  cobra.ExactArgs(1),
			RunE:  runSQLExecute,
		},
	)

	batchCmd := &cobra.Command{
		Use:   "batch [file]",
		Short: "Answer one question per line from a file",
		Args:  cobra.ExactArgs(1),
		RunE:  runBatch,
	}
	batchCmd.Flags().IntVar(&batchConcurrency, "concurrency", 4, "questions answered in parallel")

	root.AddCommand(sqlCmd, batchCmd)
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func setup(ctx context.Context) (*config.Config, *pgxpool.Pool, *slog.Logger, error) {
	cfg := config.Load()
	log := logger.New()
	pool, err := infra.NewPostgresDB(ctx, cfg.DSN())
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return cfg, pool, log, nil
}

// newStructured builds only the structured query engine. The sql subcommands
// skip the passage index probe on purpose: they work without an indexed corpus.
func newStructured(cfg *config.Config, pool *pgxpool.Pool, log *slog.Logger) usecase.StructuredAnswerUsecase {
	generator := llm.NewOllamaClient(cfg.OllamaURL, cfg.GeneratorModel,
		httpclient.NewPooledClient(120*time.Second), cfg.LLMRateLimit)
	bookings := repository.NewBookingDataSource(pool, "bookings")
	prompts := usecase.NewPromptBuilder(cfg.ContextBudget, cfg.SummaryReserved)
	return usecase.NewStructuredAnswerUsecase(bookings, generator, prompts, cfg.AnswerMaxTokens, log)
}

func runAsk(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg, pool, log, err := setup(ctx)
	if err != nil {
		return err
	}
	defer pool.Close()

	container, err := di.NewContainer(ctx, cfg, pool, log)
	if err != nil {
		return err
	}

	resp := container.Orchestrator.Execute(ctx, args[0])
	return printJSON(resp)
}

func runSQLGenerate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg, pool, log, err := setup(ctx)
	if err != nil {
		return err
	}
	defer pool.Close()

	query, err := newStructured(cfg, pool, log).GenerateQuery(ctx, args[0])
	if err != nil {
		return err
	}
	fmt.Println(query)
	return nil
}

func runSQLExecute(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg, pool, log, err := setup(ctx)
	if err != nil {
		return err
	}
	defer pool.Close()

	result, err := newStructured(cfg, pool, log).ExecuteQuery(ctx, args[0])
	if err != nil {
		return err
	}

	fmt.Println(strings.Join(result.Columns, " | "))
	for _, row := range result.Rows {
		fmt.Println(strings.Join(row, " | "))
	}
	return nil
}

func runBatch(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg, pool, log, err := setup(ctx)
	if err != nil {
		return err
	}
	defer pool.Close()

	container, err := di.NewContainer(ctx, cfg, pool, log)
	if err != nil {
		return err
	}

	file, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("failed to open question file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var questions []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			questions = append(questions, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read question file: %w", err)
	}

	answers := make([]json.RawMessage, len(questions))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(batchConcurrency)
	for i, question := range questions {
		i, question := i, question
		g.Go(func() error {
			resp := container.Orchestrator.Execute(gctx, question)
			encoded, err := json.Marshal(map[string]any{
				"question": question,
				"response": resp,
			})
			if err != nil {
				return err
			}
			answers[i] = encoded
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for _, answer := range answers {
		fmt.Println(string(answer))
	}
	return nil
}

func printJSON(v any) error {
	encoded, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(encoded))
	return nil
}
