package ui

import (
	"time"

	"octotube/internal/model"
	"octotube/internal/progress"
)

type kickoffMsg struct{}

type jobUpdateMsg struct {
	U progress.Update
}

type jobLogMsg struct {
	L progress.Log
}

type itemDoneMsg struct {
	JobID   string
	Result  model.ItemResult
	Elapsed time.Duration
}

type allDoneMsg struct{}
