package content

// Defaults returns the hard-coded default content tree. The store falls back
// to this tree on first start and whenever the persisted snapshot cannot be
// used; Reset restores it verbatim.
func Defaults() SiteContent {
	return SiteContent{
		CompanyName: "EastDocs",
		Tagline:     "London's premier podcast, video, and livestream studio",
		Description: "Where creators bring their boldest ideas to life",

		Email: "hello@eastdocs.studio",
		Phone: "+44 20 1234 5678",
		Address: Address{
			Line1: "30 Seagull Lane",
			City:  "London",
		},

		SocialMedia: SocialMedia{
			Instagram: "https://www.instagram.com/eastdockstudios/?igsh=bGY4bm9yM3lhZWEw",
			Twitter:   "https://twitter.com",
			YouTube:   "https://youtube.com",
			LinkedIn:  "https://linkedin.com",
			TikTok:    "https://tiktok.com",
		},

		Hero: Hero{
			Title:    "Where London's Boldest Voices Speak",
			Subtitle: "Professional Podcast & Video Studios",
			CTAText:  "Book Your Session",
		},

		StudioHire: StudioHire{
			HeroTitle:       "Create Exceptional Content",
			HeroSubtitle:    "Professional Podcast Studio Hire in East London",
			HeroDescription: "State-of-the-art podcast and video studio with multi-camera setups, professional lighting, and premium audio equipment. Book by the hour or choose our all-inclusive production packages.",
			AddonImages: []string{
				"https://placehold.co/600x400/1a1a2e/FFF105?text=Camera+Equipment",
				"https://placehold.co/600x400/1a1a2e/FFF105?text=Lighting+Setup",
				"https://placehold.co/600x400/1a1a2e/FFF105?text=Audio+Equipment",
				"https://placehold.co/600x400/1a1a2e/FFF105?text=Green+Screen",
				"https://placehold.co/600x400/1a1a2e/FFF105?text=Control+Room",
				"https://placehold.co/600x400/1a1a2e/FFF105?text=Studio+Space",
			},
			Packages: []StudioPackage{
				{
					Name:        "Studio Only",
					Price:       "£50",
					Duration:    "per hour",
					Description: "Self-service studio access with all equipment",
					Features: []string{
						"Up to 3 cameras",
						"4x professional microphones",
						"Professional lighting setup",
						"Soundproof recording space",
						"Comfortable seating for 4",
						"Free Wi-Fi & beverages",
					},
				},
				{
					Name:        "Studio + Engineer",
					Price:       "£80",
					Duration:    "per hour",
					Description: "Full technical support throughout your session",
					Features: []string{
						"Everything in Studio Only",
						"Dedicated audio/video engineer",
						"Live camera switching",
						"Multi-track audio recording",
						"Real-time monitoring",
						"Technical consultation",
					},
					Popular: true,
				},
				{
					Name:        "Full Production",
					Price:       "£150",
					Duration:    "per hour",
					Description: "Complete production service from recording to final edit",
					Features: []string{
						"Everything in Studio + Engineer",
						"Professional video editing",
						"Color correction & grading",
						"Audio mixing & mastering",
						"Custom graphics & titles",
						"Delivery in 7 days",
					},
				},
			},
			Addons: []StudioAddon{
				{Name: "Additional Camera", Price: "£25/session", Description: "Extra camera angle for dynamic shots"},
				{Name: "Remote Guest Connection", Price: "£35/session", Description: "Professional remote guest integration via Zoom/StreamYard"},
				{Name: "Teleprompter", Price: "£20/session", Description: "Professional teleprompter with operator"},
				{Name: "Green Screen", Price: "£40/session", Description: "Chroma key green screen with professional lighting"},
				{Name: "Extended Session", Price: "£60/hr", Description: "Discounted rate for bookings over 4 hours"},
				{Name: "Weekend/Evening", Price: "+£15/hr", Description: "Premium rate for off-peak hours"},
			},
			FAQs: []FAQ{
				{
					Question: "What's included in the studio hire?",
					Answer:   "All packages include access to our fully equipped podcast studio with up to 3 cameras, 4 microphones, professional lighting, acoustic treatment, and comfortable seating for up to 4 people.",
				},
				{
					Question: "How long can I book the studio for?",
					Answer:   "Minimum booking is 2 hours. You can book in 1-hour increments after that. We offer discounted rates for sessions over 4 hours.",
				},
				{
					Question: "Can I bring remote guests?",
					Answer:   "Yes! We support remote guest connections via Zoom, StreamYard, or any platform of your choice. Add our Remote Guest Connection service for professional audio/video integration.",
				},
				{
					Question: "Do you provide editing services?",
					Answer:   "Yes! Our Full Production package includes professional editing. Alternatively, you can book editing separately after your recording session.",
				},
				{
					Question: "What if I need to cancel or reschedule?",
					Answer:   "Free cancellation up to 48 hours before your session. Cancellations within 48 hours are subject to a 50% fee. Reschedule anytime with 24 hours notice.",
				},
				{
					Question: "Can I see the studio before booking?",
					Answer:   "Absolutely! Contact us to schedule a free studio tour. We're happy to show you around and answer any questions.",
				},
			},
		},

		Editing: Editing{
			HeroTitle:       "Professional Editing Services",
			HeroSubtitle:    "Expert editors ready to transform your raw footage",
			HeroDescription: "Skilled editors ready to transform your raw footage into polished, professional content. We edit all podcasts, including those recorded elsewhere.",
			AddonImages: []string{
				"https://placehold.co/600x400/1a1a2e/FFF105?text=Video+Editing",
				"https://placehold.co/600x400/1a1a2e/FFF105?text=Audio+Editing",
			},
			Packages: []EditingPackage{
				{
					Title:      "Standard Editing",
					Subtitle:   "Video",
					Price:      "£40",
					Unit:       "per hour recorded",
					Turnaround: "72 hours",
					Revisions:  "None included",
					Features: []string{
						"Color correction",
						"Pre-amble deletion",
						"Camera switching",
						"Quick turnaround polishing",
					},
				},
				{
					Title:      "Advanced Editing",
					Subtitle:   "Video",
					Price:      "£80",
					Unit:       "per hour recorded",
					Turnaround: "7 days per round",
					Revisions:  "Up to 2 included",
					Features: []string{
						"Everything in Standard",
						"Graphics integration",
						"Media integration",
						"Unwanted content removal",
						"Collaborative workflow",
						"Detailed revision cycles",
					},
					Popular: true,
				},
			},
			Addons: []EditingAddon{
				{
					Title:      "Episode/Season Trailer",
					Price:      "£100",
					Turnaround: "5 days (first draft)",
					Revisions:  "2 included",
					Features:   []string{"Licensed music", "Potential animations", "Professional polish"},
				},
				{
					Title:      "Intro/Outro Creation",
					Price:      "£100",
					Turnaround: "5 days (first draft)",
					Revisions:  "2 included",
					Features:   []string{"Licensed music", "Animation options", "Brand integration"},
				},
			},
		},

		LiveStreaming: LiveStreaming{
			HeroTitle:       "Professional Live Streaming",
			HeroSubtitle:    "Broadcast to multiple platforms simultaneously",
			HeroDescription: "Stream your content live to YouTube, Twitch, Facebook, and more with professional multi-camera production.",
			Packages: []StreamPackage{
				{
					Title:    "Basic Stream",
					Price:    "£100",
					Duration: "per hour",
					Features: []string{"Single camera setup", "Stream to 1 platform", "Basic graphics package", "Audio mixing"},
				},
				{
					Title:    "Pro Stream",
					Price:    "£200",
					Duration: "per hour",
					Features: []string{"Multi-camera switching", "Stream to 3 platforms", "Custom graphics & overlays", "Professional audio mixing", "Chat integration"},
					Popular:  true,
				},
				{
					Title:    "Premium Stream",
					Price:    "£350",
					Duration: "per hour",
					Features: []string{"Full production team", "Unlimited platforms", "Advanced graphics & animations", "Remote guest integration", "Instant replays", "Recording included"},
				},
			},
		},

		Membership: Membership{
			HeroTitle:       "Studio Membership",
			HeroSubtitle:    "Exclusive access for regular creators",
			HeroDescription: "Save money with our membership plans designed for podcasters and content creators who record regularly.",
			Tiers: []MembershipTier{
				{
					Name:     "Creator",
					Price:    "£150",
					Period:   "per month",
					Features: []string{"4 hours studio time", "10% off additional hours", "Priority booking", "Free equipment upgrades", "Member community access"},
				},
				{
					Name:     "Professional",
					Price:    "£400",
					Period:   "per month",
					Features: []string{"12 hours studio time", "20% off additional hours", "Dedicated engineer included", "Free editing (2 hours)", "Priority 24/7 booking", "Storage locker"},
					Popular:  true,
				},
				{
					Name:     "Enterprise",
					Price:    "£800",
					Period:   "per month",
					Features: []string{"30 hours studio time", "30% off additional hours", "Full production support", "Unlimited editing", "Dedicated account manager", "Custom packages available"},
				},
			},
		},

		Homepage: Homepage{
			FeatureImages: []string{
				"https://placehold.co/800x600/1a1a2e/FFF105?text=Podcasting",
				"https://placehold.co/800x600/1a1a2e/FFF105?text=Filming",
				"https://placehold.co/800x600/1a1a2e/FFF105?text=Streaming",
			},
			FeaturesTitle:    "What We Do",
			FeaturesSubtitle: "From concept to creation, we provide everything you need to bring your vision to life.",
			Features: []HomepageFeature{
				{
					Title:       "Podcasting",
					Description: "State-of-the-art audio recording with professional-grade microphones, soundproofing, and editing suites. Perfect for interviews, series, and solo shows.",
				},
				{
					Title:       "Filming",
					Description: "Multi-camera setups, professional lighting, and 4K recording capabilities. Ideal for YouTube content, interviews, branded videos, and influencer shoots.",
				},
				{
					Title:       "Streaming",
					Description: "Live broadcast capabilities with real-time switching, overlays, and multi-platform streaming. Engage your audience with professional live productions.",
				},
			},
			ShowreelTitle:       "See It In Action",
			ShowreelDescription: "Experience the EastDocs difference. Watch our studio come to life.",
			StatsTitle:          "Trusted By Creators",
			StatsSubtitle:       "Numbers that speak to our commitment to excellence.",
			Stats: []Stat{
				{Number: 1000, Suffix: "+", Label: "Hours Recorded"},
				{Number: 50, Suffix: "+", Label: "Creators Hosted"},
				{Number: 100, Suffix: "%", Label: "Stories Captured Perfectly"},
			},
			CTATitle:       "Ready to Record?",
			CTADescription: "Book your studio time today and bring your creative vision to life.",
			CTAButtonText:  "Book Your Session",
		},

		About: About{
			Title:       "About EastDocs Studios",
			Description: "We are London's premier podcast and video studio, dedicated to empowering creators with professional tools and spaces to bring their visions to life.",
			Mission:     "To empower creators with professional tools, spaces, and support to bring their boldest ideas to life.",
			Vision:      "To be the leading creative hub in London where every voice has the opportunity to be heard with broadcast-quality production.",
		},

		Portfolio: []PortfolioItem{},
	}
}
