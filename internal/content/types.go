// Package content holds the portfolio records and resolves their asset
// references against the static file tree.
package content

// Category groups skills on the page.
type Category string

const (
	CategoryFrontend Category = "frontend"
	CategoryBackend  Category = "backend"
	CategoryDatabase Category = "database"
	CategoryTools    Category = "tools"
	CategoryDevOps   Category = "devops"
)

// Categories lists skill categories in display order.
var Categories = []Category{CategoryFrontend, CategoryBackend, CategoryDatabase, CategoryTools, CategoryDevOps}

type Meta struct {
	Name     string `json:"name"`
	Tagline  string `json:"tagline"`
	GitHub   string `json:"github"`
	LinkedIn string `json:"linkedin"`
	Email    string `json:"email"`
	About    string `json:"about"`
	Location string `json:"location"`
	Theme    Theme  `json:"theme"`
}

// Theme carries the cosmetic differences between page variants.
type Theme struct {
	Primary   string `json:"primary"`
	Secondary string `json:"secondary"`
	Accent    string `json:"accent"`
}

type SocialLink struct {
	Name string `json:"name"`
	URL  string `json:"url"`
	Icon string `json:"icon"`
}

type Skill struct {
	Name     string   `json:"name"`
	Icon     string   `json:"icon"`
	Category Category `json:"category"`
	Level    int      `json:"level"`
}

type Project struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	TechStack    []string `json:"tech_stack"`
	Taglines     []string `json:"taglines"`
	LiveLink     string   `json:"live_link"`
	SourceLink   string   `json:"source_link"`
	ImageGallery []string `json:"-"`
	Featured     bool     `json:"featured"`
	Type         string   `json:"type"`
}

type Certification struct {
	Name        string `json:"name"`
	Image       string `json:"-"`
	Description string `json:"description"`
}
