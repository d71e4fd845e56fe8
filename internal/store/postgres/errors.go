package postgres

import "errors"

var (
	errNilDBClient       = errors.New("db client is nil")
	errNilPostgresClient = errors.New("postgres client is nil")

	errEmptyCollectionName = errors.New("collection name is empty")
	errEmptyXRef           = errors.New("person xref is empty")

	// normalised from pgconn errors by checkPostgresError
	errDuplicateKey        = errors.New("duplicate key")
	errCheckViolation      = errors.New("check constraint violation")
	errForeignKeyViolation = errors.New("foreign key violation")
)
