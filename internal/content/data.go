package content

var PortfolioMeta = Meta{
	Name:     "Soumay Sikchi",
	Tagline:  "Engineering imagination into code.",
	GitHub:   "https://github.com/SOUMAYSIKCHI/",
	LinkedIn: "https://www.linkedin.com/in/soumaysikchi/",
	Email:    "soumaysikchi2@gmail.com",
	About: `I'm a passionate developer specializing in building immersive digital experiences,
	real-time applications, and AI-powered platforms. I love pushing the boundaries of frontend,
	backend, and 3D web technologies.`,
	Location: "India",
	Theme:    Theme{Primary: "#00d4ff", Secondary: "#8b5cf6", Accent: "#00ff88"},
}

var SocialLinks = []SocialLink{
	{Name: "LinkedIn", URL: "https://www.linkedin.com/in/soumaysikchi/", Icon: "linkedin.svg"},
	{Name: "GitHub", URL: "https://github.com/SOUMAYSIKCHI/", Icon: "github.svg"},
	{Name: "Email", URL: "mailto:soumaysikchi2@gmail.com", Icon: "email.svg"},
}

// IntroImages float around the robot in the intro scene.
var IntroImages = []string{
	"projects/devsync-1.png", "projects/devsync-2.png", "projects/devsync-3.png", "projects/devsync-4.png",
	"projects/devsync-5.png", "projects/devsync-6.png", "projects/devsync-7.png", "projects/devsync-8.png",
	"projects/devtube-1.png", "projects/devtube-2.png", "projects/devtube-3.png",
	"projects/GPT-1.png", "projects/GPT-2.png", "projects/GPT-3.png",
	"projects/GPT-4.png", "projects/GPT-5.png", "projects/GPT-6.png",
}

var Skills = []Skill{
	{Name: "C", Icon: "🔧", Category: CategoryBackend, Level: 90},
	{Name: "Java", Icon: "☕", Category: CategoryBackend, Level: 85},
	{Name: "HTML", Icon: "🌐", Category: CategoryFrontend, Level: 95},
	{Name: "Tailwind CSS", Icon: "🎨", Category: CategoryFrontend, Level: 90},
	{Name: "JavaScript", Icon: "📜", Category: CategoryFrontend, Level: 92},
	{Name: "React.js", Icon: "⚛️", Category: CategoryFrontend, Level: 88},
	{Name: "Express.js", Icon: "🚀", Category: CategoryBackend, Level: 85},
	{Name: "Socket.IO", Icon: "🔌", Category: CategoryBackend, Level: 80},
	{Name: "Firebase Auth", Icon: "🔥", Category: CategoryBackend, Level: 85},
	{Name: "MySQL", Icon: "🗄️", Category: CategoryDatabase, Level: 80},
	{Name: "MongoDB", Icon: "🍃", Category: CategoryDatabase, Level: 75},
	{Name: "Node.js", Icon: "🟢", Category: CategoryBackend, Level: 85},
	{Name: "Git", Icon: "📚", Category: CategoryTools, Level: 90},
	{Name: "AWS", Icon: "☁️", Category: CategoryDevOps, Level: 70},
	{Name: "Docker", Icon: "🐳", Category: CategoryDevOps, Level: 65},
}

const github = "https://github.com/SOUMAYSIKCHI/"

var Projects = []Project{
	{
		Name:        "DevSync",
		Description: "A full-stack platform enabling developers to connect, message, explore job opportunities, and collaborate, all in real-time with socket-based alerts and AWS-powered email notifications.",
		TechStack:   []string{"MERN Stack", "Socket.IO", "AWS EC2"},
		Taglines: []string{
			"💬 Real-time messaging with Socket.IO",
			"📬 Email notifications via AWS SES",
			"🎯 Intelligent developer matchmaking",
			"🚀 Scalable deployment on AWS EC2",
		},
		LiveLink:   "https://devsync.co.in",
		SourceLink: github,
		ImageGallery: []string{
			"projects/devsync-1.png", "projects/devsync-2.png", "projects/devsync-3.png", "projects/devsync-4.png",
			"projects/devsync-5.png", "projects/devsync-6.png", "projects/devsync-7.png", "projects/devsync-8.png",
		},
		Featured: true,
		Type:     "Developer Collaboration Suite",
	},
	{
		Name:         "Dev Detective",
		Description:  "An intuitive GitHub profile explorer that fetches detailed user data, stats, and repositories with a clean responsive design.",
		TechStack:    []string{"HTML", "CSS", "JavaScript", "Tailwind CSS"},
		Taglines:     []string{"🔍 Live GitHub user search", "📈 Interactive stats and repo metrics", "🧑‍💻 Sleek and responsive UI"},
		LiveLink:     "https://dev-detective-js.vercel.app/",
		SourceLink:   github,
		ImageGallery: []string{"projects/Devdetective-1.png", "projects/Devdetective-2.png", "projects/Devdetective-3.png"},
		Type:         "GitHub User Explorer",
	},
	{
		Name:         "Weather App",
		Description:  "A minimalist weather utility that displays real-time conditions using location-based API integration.",
		TechStack:    []string{"HTML", "CSS", "JavaScript", "Tailwind CSS"},
		Taglines:     []string{"🌤️ City-wise weather data", "📍 Location-aware forecast", "💨 Lightweight and fast UI"},
		LiveLink:     "https://weatherapp-js-soumayskchi.vercel.app/",
		SourceLink:   github,
		ImageGallery: []string{"projects/Weather_App-1.png", "projects/Weather_App-2.png", "projects/Weather_App-3.png"},
		Type:         "Weather Dashboard",
	},
	{
		Name:         "Todo App",
		Description:  "A clean task manager with real-time add/remove functionality, optimized for focus and productivity.",
		TechStack:    []string{"HTML", "CSS", "JavaScript"},
		Taglines:     []string{"📝 Add, complete, delete tasks", "📋 Instant state updates", "🧼 Clean UX focused on simplicity"},
		LiveLink:     "http://soumaysikchi-todoapp.vercel.app/",
		SourceLink:   github,
		ImageGallery: []string{"projects/TODO_1.png", "projects/TODO_2.png"},
		Type:         "Task Management Tool",
	},
	{
		Name:         "Musify",
		Description:  "An offline-accessible music player that reads tracks from GitHub and offers a seamless audio experience via browser.",
		TechStack:    []string{"HTML", "CSS", "JavaScript"},
		Taglines:     []string{"🎵 GitHub-powered audio storage", "📶 Offline-friendly playback", "🎧 Streamlined UI for music lovers"},
		LiveLink:     "https://musify-jssoumay.vercel.app/",
		SourceLink:   github,
		ImageGallery: []string{"projects/Musify-1.png", "projects/Musify-2.png"},
		Type:         "Web-based Music Player",
	},
	{
		Name:        "Namaste Dhaba",
		Description: "A beautifully crafted food ordering interface with dynamic cart logic and state management using Redux Toolkit.",
		TechStack:   []string{"HTML", "CSS", "Tailwind CSS", "React.js", "Redux Toolkit"},
		Taglines:    []string{"🛒 Cart system with Redux state", "📦 Modular restaurant listing design", "🖥️ Tailwind-powered responsive layout"},
		LiveLink:    "https://namaste-dhaba.vercel.app/",
		SourceLink:  github,
		ImageGallery: []string{
			"projects/Namaste_Dhaba-1.png", "projects/Namaste_Dhaba-2.png",
			"projects/Namaste_Dhaba-3.png", "projects/Namaste-Dhaba-4.png",
		},
		Featured: true,
		Type:     "Interactive Food UI",
	},
	{
		Name:        "StreamGPT",
		Description: "An AI-driven movie discovery portal with mood-based filtering, authentication, and multilingual support.",
		TechStack:   []string{"HTML", "CSS", "Tailwind CSS", "React.js", "Redux Toolkit", "Firebase Auth"},
		Taglines:    []string{"🎬 Smart movie suggestions by mood", "🔐 Secure login with Firebase", "🌍 Multi-language support"},
		LiveLink:    "https://stream-gpt-1.web.app/",
		SourceLink:  github,
		ImageGallery: []string{
			"projects/GPT-1.png", "projects/GPT-2.png", "projects/GPT-3.png",
			"projects/GPT-4.png", "projects/GPT-5.png", "projects/GPT-6.png",
		},
		Featured: true,
		Type:     "AI-Powered Movie Portal",
	},
	{
		Name:        "DevTube",
		Description: "A feature-rich video browsing platform with live suggestions, caching, chat system, and immersive scrolling built on modern React architecture.",
		TechStack:   []string{"HTML", "CSS", "Tailwind CSS", "React.js", "Redux Toolkit", "Firebase Auth"},
		Taglines: []string{
			"🎥 Real-time search autocomplete",
			"💬 Live chat integrated",
			"📽️ Lazy load + shimmer UI",
			"🔁 API response caching",
		},
		LiveLink:     "https://www.linkedin.com/posts/soumaysikchi_reactjs-reduxtoolkit-youtubeclone-activity-7292107074409218049-gSt-",
		SourceLink:   github,
		ImageGallery: []string{"projects/devtube-1.png", "projects/devtube-2.png", "projects/devtube-3.png"},
		Featured:     true,
		Type:         "Interactive Video Portal",
	},
}

var Certifications = []Certification{
	{
		Name:        "Coursera UI/UX Design",
		Image:       "certs/coursera.png",
		Description: "Coursera UI/UX Design: completed end-to-end UI/UX course covering design principles, wireframing, and user testing.",
	},
	{
		Name:        "GFG DSA Streak",
		Image:       "certs/gfg.png",
		Description: "GFG 160 Days of DSA: recognized for consistent DSA problem-solving streak over 160 days on GeeksforGeeks.",
	},
	{
		Name:        "IBM Frontend Internship",
		Image:       "certs/ibm.png",
		Description: "IBM Frontend Internship: practical exposure to UI engineering tasks and enterprise development.",
	},
	{
		Name:        "SmartInterview Diamond",
		Image:       "certs/smartInterview.png",
		Description: "SmartInterview Diamond Certificate: rank #1784/43371. Excellence in advanced data structures and algorithms.",
	},
	{
		Name:        "SoarX UI/UX Internship",
		Image:       "certs/soarx.png",
		Description: "SoarX UI/UX Internship: practical UI/UX design experience under a structured internship program.",
	},
}
