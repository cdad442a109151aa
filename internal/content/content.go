// Package content holds the portfolio's copy: sections, projects, skill
// categories and experience entries. The store seeds itself from Default.
package content

import "github.com/Zachkp/showcase/internal/carousel"

// Section is a page section in document order.
type Section struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	// Nav is false for sections that are not linked from the nav bar.
	Nav bool `json:"nav"`
}

// SkillCategory is one tab of the skills panel.
type SkillCategory struct {
	Name   string   `json:"name"`
	Skills []string `json:"skills"`
}

// Experience is one tab of the experience panel.
type Experience struct {
	Title        string   `json:"title"`
	Company      string   `json:"company"`
	StartDate    string   `json:"startDate"`
	EndDate      string   `json:"endDate"`
	LogoPath     string   `json:"logoPath,omitempty"`
	BulletPoints []string `json:"bulletPoints"`
}

// Achievement is one card of the achievements section. Icon names the
// glyph the page draws for it.
type Achievement struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon,omitempty"`
}

// Content is everything the page renders.
type Content struct {
	AboutMe      string          `json:"aboutMe"`
	Sections     []Section       `json:"sections"`
	Projects     []carousel.Item `json:"projects"`
	Skills       []SkillCategory `json:"skills"`
	Experiences  []Experience    `json:"experiences"`
	Achievements []Achievement   `json:"achievements"`
}

// SectionIDs lists section ids in document order.
func (c *Content) SectionIDs() []string {
	ids := make([]string, len(c.Sections))
	for i, s := range c.Sections {
		ids[i] = s.ID
	}
	return ids
}

// SkillNames lists the skill category names in order.
func (c *Content) SkillNames() []string {
	names := make([]string, len(c.Skills))
	for i, s := range c.Skills {
		names[i] = s.Name
	}
	return names
}

// ExperienceTitles lists the experience tab keys in order.
func (c *Content) ExperienceTitles() []string {
	titles := make([]string, len(c.Experiences))
	for i, e := range c.Experiences {
		titles[i] = e.Title
	}
	return titles
}

const aboutMe = `I love building software that's both useful and fun, and I'm always curious about how things work behind the scenes.
Most of my projects start with a simple idea and turn into a chance to learn something new, whether it's exploring a
different language, experimenting with tools, or solving tricky problems.
When I'm not coding, you'll usually find me training Muay Thai, shooting pool with friends,
or chasing down a new challenge outside the screen.`

// Default returns the built-in portfolio content.
func Default() *Content {
	return &Content{
		AboutMe: aboutMe,
		Sections: []Section{
			{ID: "hero", Title: "Home"},
			{ID: "about", Title: "About", Nav: true},
			{ID: "skills", Title: "Skills", Nav: true},
			{ID: "experience", Title: "Experience", Nav: true},
			{ID: "projects", Title: "Projects", Nav: true},
			{ID: "achievements", Title: "Achievements", Nav: true},
			{ID: "contact", Title: "Contact", Nav: true},
		},
		Projects: []carousel.Item{
			{
				Title:       "Terminal Mail",
				Description: "A terminal-based email client built in Go with fuzzyfinder capabilities using the Charmbracelet TUI framework and go-imap.",
				Image:       "/images/mail.png",
				Tags:        []string{"Go", "Bubble Tea", "IMAP"},
			},
			{
				Title:       "Terminal Music",
				Description: "A terminal-based music streaming application built in Go with an elegant TUI interface, leveraging yt-dlp and mpv for YouTube Music playback directly from the command line.",
				Image:       "/images/music.png",
				Tags:        []string{"Go", "Bubble Tea", "mpv", "yt-dlp"},
			},
			{
				Title:       "Game Recommender",
				Description: "A machine learning-powered web application that uses TF-IDF vectorization and cosine similarity to recommend games based on content analysis, with interactive data visualizations and real-time filtering by user reviews and ratings.",
				Image:       "/images/games.png",
				Tags:        []string{"Python", "scikit-learn", "TF-IDF"},
			},
			{
				Title:       "Portfolio",
				Description: "A responsive portfolio website built with Go and Gin, with the page's scroll tracking and project carousel driven over a WebSocket session.",
				Image:       "/images/portfolio.png",
				Tags:        []string{"Go", "Gin", "WebSocket", "SQLite"},
			},
		},
		Skills: []SkillCategory{
			{Name: "Languages", Skills: []string{"Go", "Python", "JavaScript", "SQL"}},
			{Name: "Frameworks", Skills: []string{"Gin", "HTMX", "Alpine.js", "Tailwind CSS"}},
			{Name: "Tools", Skills: []string{"Git", "Docker", "SQLite", "Linux"}},
		},
		Experiences: []Experience{
			{
				Title:     "Presentation Expert",
				Company:   "Target",
				StartDate: "Aug 2023",
				EndDate:   "Present",
				LogoPath:  "images/TargetLogo.jpg",
				BulletPoints: []string{
					"Executed over 300 merchandising transitions on tight timelines by organizing team workflows and adapting quickly to changing priorities",
					"Boosted operational efficiency by managing backroom inventory processes and streamlining communication between floor and logistics teams",
					"Enhanced pricing and signage accuracy across departments by standardizing daily checks and collaborating cross-functionally",
				},
			},
			{
				Title:     "Manager",
				Company:   "Jasons Catered Events",
				StartDate: "Aug 2016",
				EndDate:   "Present",
				LogoPath:  "images/jasonsCateringLogo.png",
				BulletPoints: []string{
					"Improved client satisfaction by coordinating customized menus and ensuring all dietary requirements were accurately met",
					"Supported event technology by troubleshooting AV equipment and managing digital order tracking systems",
					"Maintained supply inventory and coordinated timely delivery between venues",
				},
			},
			{
				Title:     "Bachelor of Computer Science",
				Company:   "Western Governors University",
				StartDate: "Sept 2019",
				EndDate:   "May 2023",
				LogoPath:  "images/WGU-logo.png",
				BulletPoints: []string{
					"Graduated Magna Cum Laude with 3.8 GPA",
					"Relevant coursework: Data Structures, Algorithms, Web Development",
				},
			},
		},
		Achievements: []Achievement{
			{
				Title:       "Regional Finalist",
				Description: "Top 20 in the 2022-23 Imagine Cup hackathon.",
				Icon:        "trophy",
			},
			{
				Title:       "CodeChef & LeetCode",
				Description: "Maximum rating 1603 on CodeChef (3 star) and 200+ problems solved on LeetCode.",
				Icon:        "code",
			},
			{
				Title:       "CodeForces",
				Description: "Maximum rating 1071 on Codeforces.",
				Icon:        "star",
			},
			{
				Title:       "Hackathon Winner",
				Description: "First place at the Wienova hackathon organized by IEEE Delhi.",
				Icon:        "award",
			},
		},
	}
}
