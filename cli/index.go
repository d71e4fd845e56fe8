package cli

import (
	"context"
	"fmt"

	"github.com/MakeNowJust/heredoc"
	"github.com/goto/metasearch/core/collection"
	"github.com/goto/metasearch/core/search"
	esStore "github.com/goto/metasearch/internal/store/elasticsearch"
	"github.com/goto/metasearch/internal/store/postgres"
	"github.com/goto/salt/term"
	"github.com/spf13/cobra"
)

const defaultIndexBatchSize = 500

type personIndex interface {
	DeleteTree(ctx context.Context, tree string) error
	Upsert(ctx context.Context, tree string, persons []search.Person) error
}

func indexCommand(cfg *Config) *cobra.Command {
	var (
		batchSize int
		trees     string
	)
	cmd := &cobra.Command{
		Use:   "index",
		Short: "Copy the persons of every tree into the elasticsearch index",
		Long: heredoc.Doc(`
			Rebuild the elasticsearch person index from postgres. Each tree is
			cleared from the index before its persons are written again.
		`),
		Example: heredoc.Doc(`
			$ metasearch index
			$ metasearch index --trees kennedy,royals --batch-size 200
		`),
		Annotations: map[string]string{
			"group": "core",
		},
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := reloadFromFlag(cmd, cfg); err != nil {
				return err
			}
			ctx := cmd.Context()
			logger := initLogger(cfg.LogLevel)

			pgClient, err := initPostgres(logger, cfg)
			if err != nil {
				return err
			}
			defer pgClient.Close()

			esClient, err := initElasticsearch(logger, cfg.Elasticsearch)
			if err != nil {
				return err
			}
			if err := esClient.Migrate(ctx); err != nil {
				return fmt.Errorf("prepare person index: %w", err)
			}

			collectionRepository, err := postgres.NewCollectionRepository(pgClient)
			if err != nil {
				return err
			}
			personRepository, err := postgres.NewPersonRepository(pgClient)
			if err != nil {
				return err
			}

			names := collection.SplitNames(trees)
			if len(names) == 0 {
				all, err := collectionRepository.GetAll(ctx)
				if err != nil {
					return err
				}
				for _, c := range all {
					names = append(names, c.Name)
				}
			}

			esPersons := esStore.NewPersonRepository(esClient)
			for _, tree := range names {
				n, err := reindexTree(ctx, personRepository, esPersons, tree, batchSize)
				if err != nil {
					return err
				}
				fmt.Printf("%s: %s persons indexed\n", term.Bluef("%s", tree), term.Greenf("%d", n))
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&batchSize, "batch-size", defaultIndexBatchSize, "Number of persons per bulk request")
	cmd.Flags().StringVar(&trees, "trees", "", "Comma separated trees to index, all by default")
	return cmd
}

// reindexTree replaces the indexed persons of tree with the ones found in
// source and returns how many were written.
func reindexTree(ctx context.Context, source search.CandidateStore, index personIndex, tree string, batchSize int) (int, error) {
	if batchSize <= 0 {
		batchSize = defaultIndexBatchSize
	}

	persons, err := source.FindCandidates(ctx, tree, search.CandidateFilter{})
	if err != nil {
		return 0, fmt.Errorf("read persons of %q: %w", tree, err)
	}
	if err := index.DeleteTree(ctx, tree); err != nil {
		return 0, fmt.Errorf("clear index of %q: %w", tree, err)
	}

	for start := 0; start < len(persons); start += batchSize {
		end := start + batchSize
		if end > len(persons) {
			end = len(persons)
		}
		if err := index.Upsert(ctx, tree, persons[start:end]); err != nil {
			return start, fmt.Errorf("index persons of %q: %w", tree, err)
		}
	}
	return len(persons), nil
}
