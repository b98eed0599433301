package stagedomain

// stageNames is the full stage roster indexed by ID.
var stageNames = map[ID]string{
	1:   "Battlefield",
	2:   "Small Battlefield",
	3:   "Big Battlefield",
	4:   "Final Destination",
	5:   "Peach's Castle",
	6:   "Kongo Jungle",
	7:   "Hyrule Castle",
	8:   "Super Happy Tree",
	9:   "Dream Land",
	10:  "Saffron City",
	11:  "Mushroom Kingdom",
	12:  "Princess Peach's Castle",
	13:  "Rainbow Cruise",
	14:  "Kongo Falls",
	15:  "Jungle Japes",
	16:  "Great Bay",
	17:  "Temple",
	18:  "Brinstar",
	19:  "Yoshi's Island (Melee)",
	20:  "Yoshi's Story",
	21:  "Fountain of Dreams",
	22:  "Green Greens",
	23:  "Corneria",
	24:  "Venom",
	25:  "Pokémon Stadium",
	26:  "Onett",
	27:  "Mushroom Kingdom II",
	28:  "Brinstar Depths",
	29:  "Big Blue",
	30:  "Fourside",
	31:  "Delfino Plaza",
	32:  "Mushroomy Kingdom",
	33:  "Figure-8 Circuit",
	34:  "WarioWare, Inc.",
	35:  "Bridge of Eldin",
	36:  "Norfair",
	37:  "Frigate Orpheon",
	38:  "Yoshi's Island",
	39:  "Halberd",
	40:  "Lylat Cruise",
	41:  "Pokémon Stadium 2",
	42:  "Port Town Aero Dive",
	43:  "Castle Siege",
	44:  "Distant Planet",
	45:  "Smashville",
	46:  "New Pork City",
	47:  "Summit",
	48:  "Skyworld",
	49:  "Shadow Moses Island",
	50:  "Luigi's Mansion",
	51:  "Pirate Ship",
	52:  "Spear Pillar",
	53:  "75m",
	54:  "Mario Bros.",
	55:  "Hanenbow",
	56:  "Green Hill Zone",
	57:  "3D Land",
	58:  "Golden Plains",
	59:  "Paper Mario",
	60:  "Gerudo Valley",
	61:  "Spirit Train",
	62:  "Dream Land GB",
	63:  "Unova Pokémon League",
	64:  "Prism Tower",
	65:  "Mute City SNES",
	66:  "Magicant",
	67:  "Arena Ferox",
	68:  "Reset Bomb Forest",
	69:  "Tortimer Island",
	70:  "Balloon Fight",
	71:  "Living Room",
	72:  "Find Mii",
	73:  "Tomodachi Life",
	74:  "PictoChat 2",
	75:  "Mushroom Kingdom U",
	76:  "Mario Galaxy",
	77:  "Mario Circuit",
	78:  "Skyloft",
	79:  "The Great Cave Offensive",
	80:  "Kalos Pokémon League",
	81:  "Coliseum",
	82:  "Flat Zone X",
	83:  "Palutena's Temple",
	84:  "Gamer",
	85:  "Garden of Hope",
	86:  "Town and City",
	87:  "Wii Fit Studio",
	88:  "Boxing Ring",
	89:  "Gaur Plain",
	90:  "Duck Hunt",
	91:  "Wrecking Crew",
	92:  "Pilotwings",
	93:  "Wuhu Island",
	94:  "Windy Hill Zone",
	95:  "Wily Castle",
	96:  "Pac-Land",
	97:  "Super Mario Maker",
	98:  "Suzaku Castle",
	99:  "Midgar",
	100: "Umbra Clock Tower",
	101: "New Donk City Hall",
	102: "Great Plateau Tower",
	103: "Moray Towers",
	104: "Dracula's Castle",
	105: "Mementos",
	106: "Yggdrasil's Altar",
	107: "Spiral Mountain",
	108: "King of Fighters Stadium",
	109: "Garreg Mach Monastery",
	110: "Spring Stadium",
	111: "Minecraft World",
	112: "Northern Cave",
}

// stageAliases are community shorthands accepted by Parse.
var stageAliases = map[string]ID{
	"BF":       1,
	"SBF":      2,
	"Small BF": 2,
	"SmallBF":  2,
	"FD":       4,
	"Final":    4,
	"Omega":    4,
	"YS":       20,
	"Story":    20,
	"Lylat":    40,
	"PS2":      41,
	"Stadium":  41,
	"SV":       45,
	"Ville":    45,
	"Kalos":    80,
	"TaC":      86,
	"T&C":      86,
	"TnC":      86,
	"Town":     86,
	"NC":       112,
	"Cave":     112,
}
