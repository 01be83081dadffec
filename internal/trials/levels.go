// Package trials implements the Dev Trials: five short timed challenges
// played back to back, ending with a hand-off to the owner's profile.
package trials

import "time"

// LevelKind selects the board and the scoring rules of a level.
type LevelKind string

const (
	BugHunt        LevelKind = "bug-hunt"
	StackBuilder   LevelKind = "stack-builder"
	CodeSprint     LevelKind = "code-sprint"
	GitMerge       LevelKind = "git-merge"
	CloudAscension LevelKind = "cloud-ascension"
)

type Level struct {
	Kind        LevelKind     `json:"kind"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Duration    time.Duration `json:"duration"`
	Color       string        `json:"color"`
}

// Levels is the fixed trial order.
var Levels = []Level{
	{BugHunt, "Bug Hunt", "Click on the lines with syntax errors as they scroll by", 30 * time.Second, "#ff4444"},
	{StackBuilder, "Stack Builder", "Stack the tech logos to build your stack", 45 * time.Second, "#00d4ff"},
	{CodeSprint, "Code Sprint", "Run across the platforms, avoid semicolons and missing imports", 60 * time.Second, "#00ff88"},
	{GitMerge, "Git Merge Mayhem", "Resolve merge conflicts by picking the correct side", 40 * time.Second, "#8b5cf6"},
	{CloudAscension, "Cloud Ascension", "Climb the cloud platforms to reach the top", 50 * time.Second, "#ec4899"},
}

// Scoring.
const (
	bugHit         = 10
	bugMiss        = 5
	stackPick      = 15
	mergeResolved  = 20
	cloudClimb     = 25
	timeBonusPerS  = 2
	sprintStep     = 20
	sprintMax      = 760
	bugsPerBoard   = 8
	platformsCount = 10
)

type snippet struct {
	text  string
	buggy bool
}

var snippets = []snippet{
	{"console.log('Hello World'", true},
	{"const x = 5;", false},
	{"function() {", true},
	{"let y == 10", true},
	{"if (condition) {", false},
	{"return;", false},
	{"import React from 'react", true},
	{"export default App", false},
}

var stackNames = []string{"React", "Node", "Mongo", "Express", "Socket.IO", "AWS"}

var cloudNames = []string{"AWS", "GCP", "Azure"}

// Side of a merge conflict.
type Side string

const (
	Left  Side = "left"
	Right Side = "right"
)

type Conflict struct {
	ID      int    `json:"id"`
	Left    string `json:"left"`
	Right   string `json:"right"`
	correct Side
}

func conflicts() []Conflict {
	return []Conflict{
		{ID: 1, Left: "function hello() {", Right: "function hello() {{", correct: Left},
		{ID: 2, Left: "console.log('Hi'", Right: "console.log('Hello')", correct: Right},
		{ID: 3, Left: "return true", Right: "retrun true", correct: Left},
	}
}
