package repository

import "relaybot/domain/interfaces"

var (
	_ interfaces.Store = (*JSONStore)(nil)
	_ interfaces.Store = (*PostgresStore)(nil)
)
