package content

import "github.com/GriffinCanCode/webdesk/internal/domain/window"

const aboutMe = `<div class="about">
<img src="/PrajwalPhoto.png" alt="Prajwal Sanap" class="about-photo">
<div>
<p>Hi, I'm Prajwal, a curious tech enthusiast with a deep interest in software development, especially on the Web and in AI. I like turning ideas into useful applications and have explored iOS development, computer vision and full-stack web projects.</p>
<p>I have led tech communities such as GDSC, solve algorithmic problems for fun (even when they are frustrating) and document my DSA practice in the YouTube series Zero to Hero.</p>
<p>Outside of code, I enjoy simplifying complex topics, guiding peers and creating content that educates. I'm always open to collaboration, feedback and new challenges!</p>
</div>
</div>`

// Builtin returns the stock applications of the desktop.
func Builtin() *Catalog {
	resumeY := 10
	return &Catalog{
		Applications: []Payload{
			{ID: "Projects", Kind: KindHTML, Title: "Projects", Icon: "📁", Body: "<div>Project list goes here.</div>", MIMEType: "text/html"},
			{ID: "About Me", Kind: KindHTML, Title: "About Me", Icon: "👤", Body: aboutMe, MIMEType: "text/html"},
			{ID: "Skills", Kind: KindHTML, Title: "Skills", Icon: "🛠️", Body: "<div>Skills content goes here.</div>", MIMEType: "text/html"},
			{ID: "Contact", Kind: KindHTML, Title: "Contact", Icon: "✉️", Body: "<div>Contact info goes here.</div>", MIMEType: "text/html"},
			{
				ID:       "Resume",
				Kind:     KindIframe,
				Title:    "Resume PDF",
				Icon:     "📄",
				Src:      "/PrajwalSanapResume.pdf#toolbar=0",
				MIMEType: "application/pdf",
				Window: &window.Override{
					Position:    &window.PositionOverride{Y: &resumeY},
					Size:        &window.Size{Width: 800, Height: 900},
					FitViewport: true,
				},
			},
			{ID: "Terminal", Kind: KindComponent, Title: "Terminal", Icon: "💻", Component: "terminal"},
		},
		Dock: []Launcher{
			{Label: "Projects", Icon: "📁", App: "Projects"},
			{Label: "About Me", Icon: "👤", App: "About Me"},
			{Label: "Skills", Icon: "🛠️", App: "Skills"},
			{Label: "Contact", Icon: "✉️", App: "Contact"},
			{Label: "Resume", Icon: "📄", App: "Resume"},
			{Label: "Terminal", Icon: "💻", App: "Terminal"},
		},
		// The first desktop icon opens an application with no content of its
		// own, which renders as a placeholder window.
		Desktop: []Launcher{
			{Label: "Projects and Experience", Icon: "📁", App: "Projects and Experience"},
			{Label: "About Me", Icon: "👤", App: "About Me"},
			{Label: "Skills", Icon: "🛠️", App: "Skills"},
			{Label: "Contact", Icon: "✉️", App: "Contact"},
			{Label: "Resume", Icon: "📄", App: "Resume"},
			{Label: "Terminal", Icon: "💻", App: "Terminal"},
		},
	}
}
