package main

import (
	"errors"
	"log"
	"os"

	"github.com/trezcool/studysphere/core"
	"github.com/trezcool/studysphere/storage/database"
	boiledrepos "github.com/trezcool/studysphere/storage/database/sqlboiler"
)

var logger *log.Logger

func main() {
	logger = log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	conf, err := core.NewConfig()
	errAndDie(err)

	errAndDie(database.CreateIfNotExist(conf))
	db, err := database.Open(conf)
	errAndDie(err)

	cli := commandLine{
		db:      db,
		engine:  conf.Database.Engine,
		usrRepo: boiledrepos.NewUserRepository(db),
	}
	err = cli.run(os.Args)
	_ = db.Close()
	if err != nil {
		if !errors.Is(err, errHelp) {
			logger.Printf("\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}

func errAndDie(err error) {
	if err != nil {
		logger.Fatal(err)
	}
}
