package project

import "time"

// DateLayout is the wire format for task deadlines.
const DateLayout = "2006-01-02"

// ProjectPlan is the root of the three-level containment hierarchy:
// a project owns categories, a category owns tasks. No scheduling logic
// attaches to any level.
type ProjectPlan struct {
	Id         string
	Title      string
	Categories []ProjectCategory
}

type ProjectCategory struct {
	Id    string
	Name  string
	Tasks []ProjectTask
}

type ProjectTask struct {
	Id          string
	Name        string
	Deadline    time.Time
	IsCompleted bool
}
