package content

import "time"

// Default content shown until an administrator configures the site.

func strPtr(s string) *string { return &s }

func DefaultBiography(id string, now time.Time) Biography {
	return Biography{
		ID:        id,
		Name:      "LadyPi89",
		Title:     "Rocket League Streamer & Content Creator",
		Bio:       "Soy de España concretamente en las islas canarias aunque ahora vivo en Málaga",
		Tagline:   "Me podrás encontrar y jugar conmigo si hay hueco en las partidas",
		UpdatedAt: now,
	}
}

func DefaultPartnerships(newID func() string, now time.Time) []Partnership {
	return []Partnership{
		{ID: newID(), Name: "Sin Frenos League", Role: "Embajadora", Logo: "💎", Handle: "@sinfrenosleague", CreatedAt: now},
		{ID: newID(), Name: "ClaveCD", Role: "Partner", Logo: "🕹️", Handle: "@Clavecd", URL: strPtr("https://www.clavecd.es/?partner-ladypi89"), CreatedAt: now},
	}
}

func DefaultSocialMedia(newID func() string, now time.Time) []SocialMedia {
	links := []SocialMedia{
		{Platform: "Twitch", URL: "https://www.twitch.tv/ladypi89", Icon: "twitch", Color: "#9146ff"},
		{Platform: "TikTok", URL: "https://www.tiktok.com/@ladypi89", Icon: "tiktok", Color: "#ff0050"},
		{Platform: "Twitter", URL: "https://x.com/LadyPi89", Icon: "twitter", Color: "#1da1f2"},
		{Platform: "YouTube", URL: "https://www.youtube.com/channel/UCDghFBnSUFW7aYc4YaYp2Dw", Icon: "youtube", Color: "#ff0000"},
		{Platform: "Instagram", URL: "https://www.instagram.com/ladypi89_oficial/", Icon: "instagram", Color: "#e4405f"},
		{Platform: "Discord", URL: "https://discord.com/invite/asQR5zVSgE", Icon: "discord", Color: "#7289da"},
		{Platform: "ClaveCD", URL: "https://www.clavecd.es/?partner-ladypi89", Icon: "gamepad-2", Color: "#00d4ff"},
	}
	for i := range links {
		links[i].ID = newID()
		links[i].CreatedAt = now
	}
	return links
}

func DefaultStreamingStatus(id string, now time.Time) StreamingStatus {
	return StreamingStatus{
		ID:        id,
		Platform:  "Twitch",
		URL:       "https://www.twitch.tv/ladypi89",
		Status:    StreamOffline,
		Game:      DefaultGame,
		UpdatedAt: now,
	}
}
