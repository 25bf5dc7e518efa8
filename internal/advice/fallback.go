package advice

import (
	"strings"

	"better-life/internal/models"
)

// fallbackGroup pairs a keyword group with its canned response. Groups are
// checked in declaration order; the first match wins.
type fallbackGroup struct {
	keywords []string
	response string
}

var dietFallbacks = []fallbackGroup{
	{
		keywords: []string{"weight", "lose", "gain"},
		response: "For healthy weight management, focus on balanced meals with local Kenyan foods like ugali, sukuma wiki, and lean proteins. Consider your training schedule and eat 3-4 hours before intense workouts. Would you like to connect with one of our nutrition experts for a personalized plan?",
	},
	{
		keywords: []string{"hydration", "water", "drink"},
		response: "Hydration is crucial in Kenya's climate! Aim for 3-4 liters of water daily, more during training. Start your day with water, drink regularly during workouts, and include natural electrolytes from coconut water or diluted fruit juices.",
	},
	{
		keywords: []string{"energy", "tired", "fatigue"},
		response: "For sustained energy, include complex carbohydrates like sweet potatoes, brown rice, and traditional grains. Combine with proteins like beans, fish, or lean meat. Eat small, frequent meals and don't skip breakfast!",
	},
	{
		keywords: []string{"muscle", "protein", "strength"},
		response: "For muscle building, aim for 1.6-2.2g protein per kg body weight. Great local sources include fish, chicken, beans, groundnuts, and milk. Spread protein intake throughout the day and include it in post-workout meals.",
	},
	{
		keywords: []string{"recovery", "after workout", "post"},
		response: "Post-workout nutrition is key! Within 30 minutes, have a snack with carbs and protein like a banana with groundnut butter, or milk with honey. Follow with a balanced meal within 2 hours including local foods like fish with ugali and vegetables.",
	},
}

const dietDefault = "I'm here to help with your nutrition questions! For Kenyan athletes, I recommend focusing on local, whole foods like ugali, sukuma wiki, sweet potatoes, beans, and fresh fruits. What specific aspect of nutrition would you like to discuss?"

var mentalHealthFallbacks = []fallbackGroup{
	{
		keywords: []string{"stress", "pressure", "anxious"},
		response: "It's normal to feel stressed as an athlete. Try deep breathing exercises: breathe in for 4 counts, hold for 4, exhale for 6. Regular meditation, even 5 minutes daily, can help. Remember, pressure is a privilege - it means you're competing at a level that matters!",
	},
	{
		keywords: []string{"motivation", "unmotivated", "lazy"},
		response: "Motivation comes and goes, but discipline stays. Set small, achievable daily goals. Remember why you started - write it down and read it when motivation is low. Connect with your training partners or coach for support. Every champion has days like this!",
	},
	{
		keywords: []string{"confidence", "doubt", "believe"},
		response: "Self-doubt is part of growth. Focus on your preparation and past achievements. Use positive self-talk: 'I am prepared,' 'I belong here.' Visualize successful performances. Remember, confidence comes from competence - trust your training!",
	},
	{
		keywords: []string{"sleep", "tired", "rest"},
		response: "Quality sleep is crucial for athletes! Aim for 7-9 hours nightly. Create a bedtime routine: no screens 1 hour before bed, keep your room cool and dark. If racing thoughts keep you awake, try writing them down or gentle stretching.",
	},
	{
		keywords: []string{"injury", "hurt", "pain"},
		response: "Dealing with injury is tough mentally. It's normal to feel frustrated or sad. Focus on what you CAN do - maybe it's time to work on other skills, study your sport, or support teammates. This setback can become a comeback story!",
	},
	{
		keywords: []string{"competition", "performance", "race"},
		response: "Pre-competition nerves are normal and can actually help performance! Use them as energy. Stick to your routine, focus on your process rather than outcomes. Remember: you've trained for this moment. Trust your preparation and enjoy competing!",
	},
}

const mentalHealthDefault = "I'm here to support you! Remember that seeking help shows strength, not weakness. Mental health is just as important as physical health for athletes. If you're struggling, consider speaking with one of our mental health experts who understand athlete challenges."

// FallbackResponse scans the query case-insensitively against the topic's
// keyword groups and returns the first match, or the topic default. It is a
// total function: it always returns a non-empty string.
func FallbackResponse(topic models.Topic, query string) string {
	groups := dietFallbacks
	fallback := dietDefault
	if topic == models.TopicMentalHealth {
		groups = mentalHealthFallbacks
		fallback = mentalHealthDefault
	}

	lower := strings.ToLower(query)
	for _, g := range groups {
		for _, kw := range g.keywords {
			if strings.Contains(lower, kw) {
				return g.response
			}
		}
	}
	return fallback
}
