package db

import (
	"log"
	"strings"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/vibelabs/pov-video/internal/video"
)

// Connect opens the relational database and migrates the schema. A DSN
// containing tcp( selects MySQL, anything else is treated as a sqlite path.
func Connect(dsn string) *gorm.DB {
	var (
		gdb *gorm.DB
		err error
	)
	if strings.Contains(dsn, "tcp(") {
		gdb, err = gorm.Open(mysql.Open(dsn), &gorm.Config{})
	} else {
		gdb, err = gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	}
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	if err := gdb.AutoMigrate(&video.Video{}, &video.Job{}); err != nil {
		log.Fatalf("db migrate: %v", err)
	}
	return gdb
}
