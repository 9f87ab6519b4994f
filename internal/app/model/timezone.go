package model

import (
	"sync"
	"time"
	_ "time/tzdata"
)

// Timezone is the reference zone of the upstream platform. Every
// publication timestamp is expressed in it.
const Timezone = "Europe/Moscow"

// Location returns the reference zone. The zone database is embedded
// so this never fails on hosts without tzdata.
var Location = sync.OnceValue(func() *time.Location {
	loc, err := time.LoadLocation(Timezone)
	if err != nil {
		panic(err)
	}
	return loc
})
