// Database management
//
// Copyright (c) 2025, 2026  The go-arena authors
//
// This file is part of go-arena.
//
// go-arena is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License,
// version 3, as published by the Free Software Foundation.
//
// go-arena is distributed in the hope that it will be useful, but
// WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the GNU
// Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public
// License, version 3, along with go-arena. If not, see
// <http://www.gnu.org/licenses/>

// Package db records finished matches and final standings in a sqlite
// database.  Game state is never persisted, only results.
package db

import (
	"context"
	"database/sql"
	"log"

	_ "github.com/mattn/go-sqlite3"

	arena "go-arena"
	"go-arena/cmd"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS match (
		id       TEXT PRIMARY KEY,
		played   DATETIME DEFAULT CURRENT_TIMESTAMP,
		summary  TEXT,
		winner   TEXT,
		duration INTEGER
	);`,
	`CREATE TABLE IF NOT EXISTS outcome (
		match  TEXT REFERENCES match(id),
		player TEXT,
		score  REAL,
		time   INTEGER,
		moves  INTEGER
	);`,
	`CREATE TABLE IF NOT EXISTS standing (
		player TEXT PRIMARY KEY,
		score  REAL,
		games  INTEGER,
		wins   INTEGER,
		draws  INTEGER,
		losses INTEGER,
		time   INTEGER,
		moves  INTEGER
	);`,
}

var commands = map[string]string{
	"insert-match": `INSERT INTO match (id, summary, winner, duration)
		VALUES (?, ?, ?, ?);`,
	"insert-outcome": `INSERT INTO outcome (match, player, score, time, moves)
		VALUES (?, ?, ?, ?, ?);`,
	"insert-standing": `INSERT INTO standing
		(player, score, games, wins, draws, losses, time, moves)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(player) DO UPDATE SET
		score = excluded.score, games = excluded.games,
		wins = excluded.wins, draws = excluded.draws,
		losses = excluded.losses, time = excluded.time,
		moves = excluded.moves;`,
}

type db struct {
	write    *sql.DB
	commands map[string]*sql.Stmt
}

func (db *db) RecordMatch(ctx context.Context, res *arena.MatchResult, players []string) {
	tx, err := db.write.BeginTx(ctx, nil)
	if err != nil {
		log.Print(err)
		return
	}

	_, err = tx.Stmt(db.commands["insert-match"]).ExecContext(ctx,
		res.Id.String(), res.Summary, res.Winner, res.Duration.Nanoseconds())
	if err != nil {
		log.Print(err)
		if err := tx.Rollback(); err != nil {
			log.Print(err)
		}
		return
	}

	for _, p := range players {
		_, err = tx.Stmt(db.commands["insert-outcome"]).ExecContext(ctx,
			res.Id.String(), p, res.Scores[p],
			res.Times[p].Nanoseconds(), res.Moves[p])
		if err != nil {
			log.Print(err)
			if err := tx.Rollback(); err != nil {
				log.Print(err)
			}
			return
		}
	}

	if err = tx.Commit(); err != nil {
		log.Print(err)
	}
}

func (db *db) RecordStanding(ctx context.Context, s *arena.Standing) {
	_, err := db.commands["insert-standing"].ExecContext(ctx,
		s.Name, s.Score, s.Games, s.Wins, s.Draws, s.Losses,
		s.Time.Nanoseconds(), s.Moves)
	if err != nil {
		log.Print(err)
	}
}

func (db *db) Start(st *cmd.State, conf *cmd.Conf) {
	<-st.Context.Done()
}

func (db *db) Shutdown() {
	// https://www.sqlite.org/pragma.html#pragma_optimize
	if _, err := db.write.Exec("PRAGMA optimize;"); err != nil {
		log.Print(err)
	}
	if err := db.write.Close(); err != nil {
		log.Print(err)
	}
}

func (*db) String() string { return "Database Manager" }

// Initialise the database and register it with the shared state
func Register(st *cmd.State, conf *cmd.Conf) {
	write, err := sql.Open("sqlite3", conf.Database.File)
	if err != nil {
		log.Fatal(err, ": ", conf.Database.File)
	}
	write.SetConnMaxLifetime(0)
	write.SetMaxIdleConns(1)
	write.SetMaxOpenConns(1)

	db := &db{
		write:    write,
		commands: make(map[string]*sql.Stmt),
	}

	for _, pragma := range []string{
		// https://www.sqlite.org/pragma.html#pragma_journal_mode
		"journal_mode = WAL",
		// https://www.sqlite.org/pragma.html#pragma_synchronous
		"synchronous = normal",
		// https://www.sqlite.org/pragma.html#pragma_foreign_keys
		"foreign_keys = on",
	} {
		arena.Debug.Printf("Run PRAGMA %v", pragma)
		if _, err = db.write.Exec("PRAGMA " + pragma + ";"); err != nil {
			log.Fatal(err)
		}
	}

	for _, table := range schema {
		if _, err = db.write.Exec(table); err != nil {
			log.Fatal(err)
		}
	}

	for name, command := range commands {
		db.commands[name], err = db.write.Prepare(command)
		if err != nil {
			log.Fatal(name, ": ", err)
		}
		arena.Debug.Printf("Registered command %v", name)
	}

	st.Register(cmd.Database(db))
}
