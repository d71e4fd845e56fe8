package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/MakeNowJust/heredoc"
	"github.com/goto/metasearch/core/collection"
	"github.com/goto/metasearch/core/search"
	"github.com/goto/metasearch/internal/store/postgres"
	"github.com/goto/salt/term"
	"github.com/spf13/cobra"
)

// treeFile is the exchange format of the import command.
type treeFile struct {
	Collection collection.Collection `json:"collection"`
	Persons    []search.Person       `json:"persons"`
}

type collectionWriter interface {
	Upsert(ctx context.Context, c collection.Collection) (int, error)
}

type personWriter interface {
	Upsert(ctx context.Context, tree string, p search.Person) error
}

func importCommand(cfg *Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file.json>",
		Short: "Load a tree and its persons into postgres",
		Example: heredoc.Doc(`
			$ metasearch import ./kennedy.json
		`),
		Annotations: map[string]string{
			"group": "core",
		},
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := reloadFromFlag(cmd, cfg); err != nil {
				return err
			}

			var tf treeFile
			if err := parseFile(args[0], &tf); err != nil {
				return fmt.Errorf("read %q: %w", args[0], err)
			}

			ctx := cmd.Context()
			logger := initLogger(cfg.LogLevel)
			pgClient, err := initPostgres(logger, cfg)
			if err != nil {
				return err
			}
			defer pgClient.Close()

			collectionRepository, err := postgres.NewCollectionRepository(pgClient)
			if err != nil {
				return err
			}
			personRepository, err := postgres.NewPersonRepository(pgClient)
			if err != nil {
				return err
			}

			n, err := importTree(ctx, collectionRepository, personRepository, tf)
			if err != nil {
				return err
			}
			fmt.Printf("%s: %s persons imported\n", term.Bluef("%s", tf.Collection.Name), term.Greenf("%d", n))

			if cfg.Elasticsearch.Enabled {
				fmt.Println(term.Cyanf("Run `metasearch index --trees %s` to refresh the search index", tf.Collection.Name))
			}
			return nil
		},
	}
	return cmd
}

func importTree(ctx context.Context, collections collectionWriter, persons personWriter, tf treeFile) (int, error) {
	if err := collection.ValidateName(tf.Collection.Name); err != nil {
		return 0, err
	}
	if _, err := collections.Upsert(ctx, tf.Collection); err != nil {
		return 0, err
	}

	for i, p := range tf.Persons {
		if p.XRef == "" {
			return i, errors.New("person without xref")
		}
		if err := persons.Upsert(ctx, tf.Collection.Name, p); err != nil {
			return i, fmt.Errorf("import %q: %w", p.XRef, err)
		}
	}
	return len(tf.Persons), nil
}
