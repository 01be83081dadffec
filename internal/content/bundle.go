package content

import "slices"

type SkillGroup struct {
	Category Category `json:"category"`
	Skills   []Skill  `json:"skills"`
}

type ProjectView struct {
	Project
	Gallery []Image `json:"gallery"`
}

// Slide returns the gallery image shown at slide i, wrapping around in
// either direction. It is the zero Image for an empty gallery.
func (v ProjectView) Slide(i int) Image {
	n := len(v.Gallery)
	if n == 0 {
		return Image{}
	}
	return v.Gallery[((i%n)+n)%n]
}

type CertificationView struct {
	Certification
	Image Image `json:"image"`
}

// Bundle is the page payload served to the browser.
type Bundle struct {
	Meta           Meta                `json:"meta"`
	Social         []SocialLink        `json:"social"`
	IntroImages    []Image             `json:"intro_images"`
	Skills         []SkillGroup        `json:"skills"`
	Projects       []ProjectView       `json:"projects"`
	Certifications []CertificationView `json:"certifications"`
}

// NewBundle assembles the portfolio records with every asset resolved.
func NewBundle(r *Resolver) Bundle {
	b := Bundle{
		Meta:   PortfolioMeta,
		Social: SocialLinks,
		Skills: GroupSkills(Skills),
	}
	for _, ref := range IntroImages {
		b.IntroImages = append(b.IntroImages, r.Image(ref))
	}
	for _, p := range FeaturedFirst(Projects) {
		v := ProjectView{Project: p, Gallery: make([]Image, 0, len(p.ImageGallery))}
		for _, ref := range p.ImageGallery {
			v.Gallery = append(v.Gallery, r.Image(ref))
		}
		if len(v.Gallery) == 0 {
			v.Gallery = append(v.Gallery, r.Image(""))
		}
		b.Projects = append(b.Projects, v)
	}
	for _, c := range Certifications {
		b.Certifications = append(b.Certifications, CertificationView{Certification: c, Image: r.Image(c.Image)})
	}
	return b
}

// GroupSkills buckets skills by category in Categories order, keeping
// the input order inside each bucket. Empty categories are left out.
func GroupSkills(skills []Skill) []SkillGroup {
	var groups []SkillGroup
	for _, c := range Categories {
		var in []Skill
		for _, s := range skills {
			if s.Category == c {
				in = append(in, s)
			}
		}
		if len(in) > 0 {
			groups = append(groups, SkillGroup{Category: c, Skills: in})
		}
	}
	return groups
}

// FeaturedFirst returns a copy of projects with featured ones first.
func FeaturedFirst(projects []Project) []Project {
	out := slices.Clone(projects)
	slices.SortStableFunc(out, func(a, b Project) int {
		switch {
		case a.Featured == b.Featured:
			return 0
		case a.Featured:
			return -1
		default:
			return 1
		}
	})
	return out
}
