package geoassist

import "github.com/goforj/geoassist/geocore"

// Driver identifies the persistent tier backend.
type Driver = geocore.Driver

const (
	DriverNull   = geocore.DriverNull
	DriverFile   = geocore.DriverFile
	DriverMemory = geocore.DriverMemory
	DriverDynamo = geocore.DriverDynamo
	DriverSQL    = geocore.DriverSQL
	DriverRedis  = geocore.DriverRedis
	DriverNATS   = geocore.DriverNATS
)

// Store is the persistent key/value tier contract.
type Store = geocore.Store
