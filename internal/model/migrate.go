package model

// AllModels lists every persisted model in dependency order, for AutoMigrate
func AllModels() []interface{} {
	return []interface{}{
		&Mall{},
		&User{},
		&Product{},
		&Transaction{},
		&TransactionItem{},
	}
}
