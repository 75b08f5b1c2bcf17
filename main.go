package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/chzyer/readline"
	"github.com/eiannone/keyboard"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/devancy/search-server/config"
	utils "github.com/devancy/search-server/utils"
)

func main() {
	var (
		configPath string
		pipedInput bool
	)
	flag.StringVar(&configPath, "config", "", "configuration file (yaml or json)")
	flag.BoolVar(&pipedInput, "stdin", false, "read stop words, documents, and queries from stdin")
	flag.Parse()

	cfg, err := config.Load(configPath, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Initialization error: %v\n", err)
		os.Exit(1)
	}

	log := setupLogging(cfg.Log)
	log.Info().Msg("running document search engine")

	if pipedInput {
		if err := runPiped(os.Stdin, cfg, log); err != nil {
			log.Fatal().Err(err).Msg("runtime error")
		}
		return
	}

	server, err := buildServer(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("initialization error")
	}
	if err := runInteractiveSearch(server, cfg); err != nil {
		log.Fatal().Err(err).Msg("runtime error")
	}
}

// setupLogging configures the process logger from config.
func setupLogging(cfg config.LogConfig) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	var w io.Writer = os.Stderr
	if cfg.Format == "console" {
		w = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}
	}
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}

// buildServer creates the engine and indexes the startup corpus.
func buildServer(cfg *config.Config, log zerolog.Logger) (*utils.SearchServer, error) {
	opts := []utils.Option{
		utils.WithShardCount(cfg.Engine.ShardCount),
		utils.WithLogger(log),
	}
	if cfg.Engine.Metrics {
		opts = append(opts, utils.WithMetrics(utils.NewMetrics(prometheus.NewRegistry())))
	}
	server, err := utils.NewSearchServerFromText(cfg.Corpus.StopWords, opts...)
	if err != nil {
		return nil, err
	}

	entries := demoCorpus()
	if cfg.Corpus.Path != "" {
		start := time.Now()
		entries, err = utils.LoadCorpus(cfg.Corpus.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to load corpus: %w", err)
		}
		log.Info().Str("path", cfg.Corpus.Path).Int("documents", len(entries)).Dur("took", time.Since(start)).Msg("corpus loaded")
	}

	for _, entry := range entries {
		if err := server.AddDocument(entry.ID, entry.Text, entry.Status, entry.Ratings); err != nil {
			return nil, err
		}
	}
	log.Info().Int("documents", server.DocumentCount()).Msg("corpus indexed")
	return server, nil
}

// runPiped executes the line protocol: stop words, document count,
// documents, then one query per line.
func runPiped(r io.Reader, cfg *config.Config, log zerolog.Logger) error {
	stopWords, entries, queries, err := utils.ReadCorpus(r)
	if err != nil {
		return err
	}
	server, err := utils.NewSearchServerFromText(stopWords, utils.WithShardCount(cfg.Engine.ShardCount), utils.WithLogger(log))
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if err := server.AddDocument(entry.ID, entry.Text, entry.Status, entry.Ratings); err != nil {
			return err
		}
	}
	for _, query := range queries {
		docs, err := server.FindTopDocuments(query)
		if err != nil {
			return err
		}
		for _, doc := range docs {
			fmt.Println(doc)
		}
	}
	return nil
}

// runInteractiveSearch drives the query REPL. A plain line searches; lines
// starting with ':' run commands (see printHelp).
func runInteractiveSearch(server *utils.SearchServer, cfg *config.Config) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "> ",
		HistoryFile:     ".search_history.tmp",
		InterruptPrompt: "^C\n",
		EOFPrompt:       "exit\n",
		HistoryLimit:    100,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize readline: %w", err)
	}
	defer rl.Close()

	requests := utils.NewRequestQueue(server)
	policy := utils.Sequential
	if cfg.Engine.Parallel {
		policy = utils.Parallel
	}

	fmt.Println("\nEnter a query, or :help for commands (Ctrl+C or 'exit' to quit):")
	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				fmt.Println("\nExiting...")
				return nil
			}
			continue
		}
		if err == io.EOF || strings.TrimSpace(line) == "exit" {
			fmt.Println("\nExiting...")
			return nil
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, ":") {
			runCommand(server, requests, line)
			continue
		}
		performSearch(server, requests, policy, line, cfg.Engine.PageSize)
	}
}

// runCommand dispatches a ':' command line.
func runCommand(server *utils.SearchServer, requests *utils.RequestQueue, line string) {
	fields := strings.Fields(line)
	switch fields[0] {
	case ":help":
		printHelp()
	case ":match":
		if len(fields) < 3 {
			fmt.Println("usage: :match <id> <query>")
			return
		}
		id, err := strconv.Atoi(fields[1])
		if err != nil {
			fmt.Printf("bad document id %q\n", fields[1])
			return
		}
		words, status, err := server.MatchDocument(strings.Join(fields[2:], " "), id)
		if err != nil {
			fmt.Printf("error: %v\n", err)
			return
		}
		fmt.Printf("{ document_id = %d, status = %s, words = [%s] }\n", id, status, strings.Join(words, ", "))
	case ":remove":
		if len(fields) != 2 {
			fmt.Println("usage: :remove <id>")
			return
		}
		id, err := strconv.Atoi(fields[1])
		if err != nil {
			fmt.Printf("bad document id %q\n", fields[1])
			return
		}
		server.RemoveDocument(id)
		fmt.Printf("document %d removed (count now %d)\n", id, server.DocumentCount())
	case ":dedupe":
		before := server.DocumentCount()
		utils.RemoveDuplicates(server, func(id int) {
			fmt.Printf("Found duplicate document id %d\n", id)
		})
		fmt.Printf("documents: %d -> %d\n", before, server.DocumentCount())
	case ":queries":
		raw := strings.TrimSpace(strings.TrimPrefix(line, ":queries"))
		if raw == "" {
			fmt.Println("usage: :queries <query> ; <query> ; ...")
			return
		}
		var queries []string
		for _, q := range strings.Split(raw, ";") {
			if q = strings.TrimSpace(q); q != "" {
				queries = append(queries, q)
			}
		}
		docs, err := utils.ProcessQueriesJoined(server, queries)
		if err != nil {
			fmt.Printf("error: %v\n", err)
			return
		}
		for _, doc := range docs {
			fmt.Println(doc)
		}
	case ":stats":
		fmt.Printf("documents: %d, empty-result requests: %d\n", server.DocumentCount(), requests.NoResultRequests())
	default:
		fmt.Printf("unknown command %s (try :help)\n", fields[0])
	}
}

func printHelp() {
	fmt.Println(`commands:
  <query>            search; prefix a word with '-' to exclude documents
  :match <id> <q>    show which query words a document contains
  :remove <id>       remove a document
  :dedupe            remove duplicate documents
  :queries a ; b     run several queries in parallel, print joined results
  :stats             show corpus and request statistics
  :help              this text`)
}

// performSearch runs one query and pages the results. Sequential queries
// go through the request queue so :stats can report the empty-result
// count; parallel queries call the engine directly.
func performSearch(server *utils.SearchServer, requests *utils.RequestQueue, policy utils.ExecutionPolicy, query string, pageSize int) {
	start := time.Now()
	var (
		results []utils.Document
		err     error
	)
	if policy == utils.Parallel {
		results, err = server.FindTopDocumentsWithPolicy(policy, query, func(_ int, status utils.DocumentStatus, _ int) bool {
			return status == utils.StatusActual
		})
	} else {
		results, err = requests.AddFindRequest(query)
	}
	if err != nil {
		var invalid *utils.InvalidArgumentError
		if errors.As(err, &invalid) {
			fmt.Printf("invalid query: %s\n", invalid.Reason)
			return
		}
		fmt.Printf("error: %v\n", err)
		return
	}
	fmt.Printf("\nSearch results for %q (%v):\n", query, time.Since(start).Round(time.Microsecond))
	displayResults(results, pageSize)
}

// displayResults prints results page by page, waiting for a key between
// pages. Enter shows the next page; any other key stops.
func displayResults(results []utils.Document, pageSize int) {
	if len(results) == 0 {
		fmt.Println("No matches found.")
		return
	}
	pages := utils.Paginate(results, pageSize)
	for i, page := range pages {
		for _, doc := range page {
			fmt.Println(doc)
		}
		if i == len(pages)-1 {
			break
		}
		fmt.Printf("-- page %d/%d, Enter for more --\n", i+1, len(pages))
		if !waitForEnter() {
			return
		}
	}
	fmt.Println("End of results.")
}

// waitForEnter reads one key and reports whether it was Enter.
func waitForEnter() bool {
	_, key, err := keyboard.GetSingleKey()
	if err != nil {
		return false
	}
	return key == keyboard.KeyEnter
}

// demoCorpus is the built-in corpus used when no corpus file is
// configured. Several documents share a word set so :dedupe has something
// to find.
func demoCorpus() []utils.CorpusEntry {
	return []utils.CorpusEntry{
		{ID: 1, Text: "funny pet and nasty rat", Status: utils.StatusActual, Ratings: []int{7, 2, 7}},
		{ID: 2, Text: "funny pet with curly hair", Status: utils.StatusActual, Ratings: []int{1, 2}},
		{ID: 3, Text: "funny pet with curly hair", Status: utils.StatusActual, Ratings: []int{1, 2}},
		{ID: 4, Text: "funny pet and curly hair", Status: utils.StatusActual, Ratings: []int{1, 2}},
		{ID: 5, Text: "funny funny pet and nasty nasty rat", Status: utils.StatusActual, Ratings: []int{1, 2}},
		{ID: 6, Text: "funny pet and not very nasty rat", Status: utils.StatusActual, Ratings: []int{1, 2}},
		{ID: 7, Text: "very nasty rat and not very funny pet", Status: utils.StatusActual, Ratings: []int{1, 2}},
		{ID: 8, Text: "pet with rat and rat and rat", Status: utils.StatusActual, Ratings: []int{1, 2}},
		{ID: 9, Text: "nasty rat with curly hair", Status: utils.StatusActual, Ratings: []int{1, 2}},
	}
}
