package character

// StartingNames is the name pool sampled for the initial roster.
var StartingNames = []string{
	"Aria", "Zyx", "Kael", "Luna", "Raven",
	"Vex", "Dante", "Nyx", "Orion", "Zara",
}

// RecruitNames is the name pool sampled for characters added mid-session.
var RecruitNames = []string{
	"Seraph", "Morrigan", "Thane", "Lilith", "Grimm", "Vesper",
}
