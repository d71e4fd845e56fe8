package cli

import "github.com/MakeNowJust/heredoc"

var envHelp = map[string]string{
	"short": "List of supported environment variables",
	"long": heredoc.Doc(`
		Every configuration key can be set through an environment variable
		prefixed with METASEARCH_. Nested keys are joined with an underscore.

		METASEARCH_LOG_LEVEL: log level, one of debug, info, warn, error.

		METASEARCH_SERVICE_PORT: port the search endpoint listens on.

		METASEARCH_SERVICE_ROUTE: path the aggregator calls, /MetaSearch by default.

		METASEARCH_SERVICE_SURNAME_MATCH: "exact" or "prefix".

		METASEARCH_DB_HOST, METASEARCH_DB_PORT, METASEARCH_DB_NAME,
		METASEARCH_DB_USER, METASEARCH_DB_PASSWORD: postgres connection.

		METASEARCH_ELASTICSEARCH_ENABLED: search candidates in elasticsearch.

		METASEARCH_ELASTICSEARCH_BROKERS: comma separated elasticsearch urls.
	`),
}
