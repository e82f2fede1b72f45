/*
Package config loads the runtime configuration of the book lending executables.

Sources, lowest precedence first:
  - built-in defaults
  - an optional YAML file
  - a .env file in the working directory
  - the process environment (TABLE_NAME, AWS_REGION, DYNAMODB_ENDPOINT, ...)

Example file:

	dynamodb:
	  tableName: Books
	  region: us-east-1
	  endpoint: http://localhost:8000   # DynamoDB Local
	http:
	  addr: ":8080"
	  corsAllowedOrigins: ["*"]
	  rateLimitRps: 10
	  rateLimitBurst: 20
	tracing:
	  enabled: false

The table name has no default; Load fails with ErrNoTableName when it is unset.
*/
package config
