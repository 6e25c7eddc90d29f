package cmd

// Config carries every runtime setting the service needs. Values are loaded
// from the environment (with .env support) in main.
type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	// KafkaHost may list several brokers separated by commas. An empty
	// value disables event publishing entirely.
	KafkaHost              string
	KafkaOrderChangedTopic string

	// SettlementCollateralPolicy selects what happens to the courier's
	// collateral on completion: "returned" or "forfeited".
	SettlementCollateralPolicy string

	// ReconciliationSchedule is a six-field cron expression (with seconds)
	// for the escrow reconciliation sweep.
	ReconciliationSchedule string
}
