package catalog

// builtinModules is the reference content set shipped with the binary.
var builtinModules = []Module{
	{
		ID:          Atom,
		Title:       "Atom & Subatomic Particles",
		Description: "Explore the building blocks of matter: Protons, Neutrons, and Electrons.",
		Lecture:     "Welcome to the Quantum Holo-Deck! I'm your Science Teacher, and today, we are going to shrink down—way down—past the cells, past the molecules, until we are standing right in front of the building blocks of the entire universe. Look around! See those shimmering spheres? Those are Protons and Neutrons, held together by the strong nuclear force. The tiny blue streaks orbiting them? Those are Electrons, moving at incredible speeds!",
		Color:       "#06b6d4",
		Quiz: []Question{
			{Prompt: "What particles are found in the nucleus of an atom?", Options: []string{"Electrons only", "Protons and Neutrons", "Photons", "Neutrinos"}, Correct: 1},
			{Prompt: "Which force holds the nucleus together?", Options: []string{"Gravity", "Electromagnetic force", "Strong nuclear force", "Friction"}, Correct: 2},
			{Prompt: "Electrons carry which type of charge?", Options: []string{"Positive", "Neutral", "Negative", "Variable"}, Correct: 2},
		},
	},
	{
		ID:          NewtonLaws,
		Title:       "Newton's Second Law",
		Description: "Force equals mass times acceleration (F=ma). Observe objects in motion.",
		Lecture:     "Hello students! Let's talk about force. Isaac Newton discovered that if you push an object, its speed changes depending on how heavy it is. In this simulation, you can see how different masses react to the same force. Larger masses accelerate slower! It's all about that elegant equation: F equals M A.",
		Color:       "#8b5cf6",
		Quiz: []Question{
			{Prompt: "In F=ma, what does 'm' stand for?", Options: []string{"Movement", "Mass", "Magnetism", "Momentum"}, Correct: 1},
			{Prompt: "If force increases and mass stays the same, what happens to acceleration?", Options: []string{"It decreases", "It stays the same", "It increases", "It stops"}, Correct: 2},
			{Prompt: "Who formulated the Second Law of Motion?", Options: []string{"Albert Einstein", "Marie Curie", "Isaac Newton", "Charles Darwin"}, Correct: 2},
		},
	},
	{
		ID:          SolarSystem,
		Title:       "Orbital Mechanics",
		Description: "Understand gravity and how celestial bodies interact in space.",
		Lecture:     "Gravity is the invisible glue of the universe. Watch how the Earth orbits the Sun. Without enough speed, it would crash into the center; without enough gravity, it would fly off into the void. It is a perfect, delicate celestial dance balance.",
		Color:       "#f59e0b",
		Quiz: []Question{
			{Prompt: "What force keeps the Earth in orbit around the Sun?", Options: []string{"Centrifugal force", "Gravity", "Magnetism", "Air resistance"}, Correct: 1},
			{Prompt: "What would happen if Earth had no orbital speed?", Options: []string{"It would float away", "It would stay still", "It would fall into the Sun", "It would spin faster"}, Correct: 2},
			{Prompt: "The Sun contains approximately how much of the solar system's mass?", Options: []string{"10%", "50%", "99%", "75%"}, Correct: 2},
		},
	},
	{
		ID:          MolecularBonding,
		Title:       "Ionic Bonding: NaCl",
		Description: "Observe how Sodium and Chlorine form Table Salt through electron transfer.",
		Lecture:     "Look closely! This is Sodium Chloride, common table salt. Unlike covalent bonds where atoms share, here we have an Ionic Bond. The Sodium atom has GIVEN AWAY an electron to the Chlorine atom. Now, Sodium is positively charged, and Chlorine is negatively charged. Like powerful magnets, their opposite charges pull them together in a strong electrostatic attraction. This is the foundation of the crystal lattice!",
		Color:       "#10b981",
		Quiz: []Question{
			{Prompt: "What type of bond is found in Sodium Chloride (NaCl)?", Options: []string{"Covalent Bond", "Ionic Bond", "Metallic Bond", "Hydrogen Bond"}, Correct: 1},
			{Prompt: "In this bond, what does the Sodium atom do with its electron?", Options: []string{"Shares it", "Gives it away", "Takes another", "Destroys it"}, Correct: 1},
			{Prompt: "Why do the Na+ and Cl- ions stay together?", Options: []string{"Glue", "Gravity", "Electrostatic attraction", "Suction"}, Correct: 2},
		},
	},
	{
		ID:          DNAStructure,
		Title:       "Genetics & The Double Helix",
		Description: "Discover the blueprint of life encoded in DNA, chromosomes, and cells.",
		Lecture:     "Step into the microscopic world! This twisted ladder is DNA, the blueprint of all life. But notice how it doesn't just float around loosely—it tightly coils itself into these large 'X' shapes called Chromosomes. This allows massive amounts of data to fit inside tiny spaces. And look behind you: those red discs are Blood Cells. Every living thing is built from these incredible biological blueprints!",
		Color:       "#ec4899",
		Quiz: []Question{
			{Prompt: "What shape is the DNA molecule?", Options: []string{"Circle", "Triple helix", "Double helix", "Square ladder"}, Correct: 2},
			{Prompt: "DNA coils tightly to form which X-shaped structure?", Options: []string{"Ribosome", "Chromosome", "Mitochondria", "Cell Wall"}, Correct: 1},
			{Prompt: "What are the basic 'rungs' of the DNA ladder called?", Options: []string{"Bones", "Sugar pairs", "Base pairs", "Proteins"}, Correct: 2},
		},
	},
	{
		ID:          Magnetism,
		Title:       "Magnetic Fields",
		Description: "Visualize the invisible forces surrounding magnets.",
		Lecture:     "Magnetism is a force that acts at a distance. Even though you can't see these field lines with your eyes, they are always there. Notice how the lines flow from the North pole to the South pole. This same principle allows compasses to work and protects our Earth from solar radiation via our magnetic shield.",
		Color:       "#ef4444",
		Quiz: []Question{
			{Prompt: "Magnetic field lines flow from which pole to which?", Options: []string{"S to N", "N to S", "W to E", "Inside out"}, Correct: 1},
			{Prompt: "Can you see magnetic field lines with the naked eye?", Options: []string{"Yes, always", "Only at night", "No, they are invisible", "Only if it's cold"}, Correct: 2},
			{Prompt: "What is Earth's natural magnetic shield called?", Options: []string{"Ozone layer", "Magnetosphere", "Atmosphere", "Hydrosphere"}, Correct: 1},
		},
	},
	{
		ID:          Photosynthesis,
		Title:       "Photosynthesis & Growth",
		Description: "How plants convert sunlight into chemical energy for growth.",
		Lecture:     "Plants are nature's solar power plants. Observe how the photons—light rays from the sun—strike the leaves. This energy triggers a chemical reaction that creates glucose. As the plant absorbs more light, it uses that energy to build its structure, growing from a tiny sprout into a full-grown plant. Sunlight literally becomes the building blocks of life!",
		Color:       "#22c55e",
		Quiz: []Question{
			{Prompt: "Which organelle is responsible for photosynthesis?", Options: []string{"Mitochondria", "Nucleus", "Chloroplast", "Vacuole"}, Correct: 2},
			{Prompt: "What energy source powers plant growth?", Options: []string{"Wind", "Sunlight", "Static electricity", "Gravity"}, Correct: 1},
			{Prompt: "Photosynthesis converts CO2 and water into what?", Options: []string{"Oxygen and Sugar", "Salt", "Carbon", "Nitrogen"}, Correct: 0},
		},
	},
	{
		ID:          SoundWaves,
		Title:       "Sound, Vibrations & Speed",
		Description: "Visualize how sound travels through air and its incredible speed.",
		Lecture:     "Sound is a mechanical wave. When this tuning fork vibrates, it pushes air molecules, creating ripples of pressure that travel outward. Did you know that sound travels at about 343 meters per second in air? That's over 1,200 kilometers per hour! It's fast, but still much slower than light, which is why you see lightning before you hear thunder.",
		Color:       "#38bdf8",
		Quiz: []Question{
			{Prompt: "Sound travels through which type of wave?", Options: []string{"Transverse", "Longitudinal", "Electromagnetic", "Static"}, Correct: 1},
			{Prompt: "What is the approximate speed of sound in air?", Options: []string{"10 m/s", "100 m/s", "343 m/s", "300,000 km/s"}, Correct: 2},
			{Prompt: "Which travels faster: Light or Sound?", Options: []string{"Sound", "Light", "They are equal", "Neither"}, Correct: 1},
		},
	},
	{
		ID:          Animalia,
		Title:       "Kingdom: Animalia",
		Description: "Explore the complex structures and behaviors of animals with scientific classification.",
		Lecture:     "Welcome to the Biological Wing! Kingdom Animalia is incredibly diverse. To keep track of millions of species, scientists use 'Binomial Nomenclature'—giving every animal a two-part Latin name. Look at these holographic specimens: the Moon Jellyfish, or *Aurelia aurita*, which pulsates with primitive muscles; the Great White Shark, *Carcharodon carcharias*, an apex predator of the ocean; and the Honey Bee, *Apis mellifera*, which shows complex social structure. All these creatures share one thing: they are multicellular organisms that must find their own food!",
		Color:       "#f472b6",
		Quiz: []Question{
			{Prompt: "What is the scientific naming system called?", Options: []string{"Common Naming", "Latin Listing", "Binomial Nomenclature", "Biological ID"}, Correct: 2},
			{Prompt: "Which animal shown is the 'Apis mellifera'?", Options: []string{"The Shark", "The Jellyfish", "The Honey Bee", "The Lion"}, Correct: 2},
			{Prompt: "Animals are 'heterotrophs', which means they...", Options: []string{"Make their own food", "Must consume organic material", "Can live without air", "Are made of one cell"}, Correct: 1},
		},
	},
	{
		ID:          Plantae,
		Title:       "Kingdom: Plantae",
		Description: "Explore diverse plant life, from forest titans to carnivorous predators.",
		Lecture:     "Welcome to the Botanical Lab! Kingdom Plantae includes over 300,000 species of autotrophs—organisms that build their own food using sunlight. We use binomial nomenclature to classify them as well. Observe our holographic garden: the English Oak (*Quercus robur*), a titan of the forest; the Venus Flytrap (*Dionaea muscipula*), showcasing a unique carnivorous adaptation; and the Western Sword Fern (*Polystichum munitum*), representing ancient vascular lineages. Every green part you see contains chlorophyll, the magic engine of our planet!",
		Color:       "#4ade80",
		Quiz: []Question{
			{Prompt: "What is the scientific name for the Venus Flytrap?", Options: []string{"Quercus robur", "Dionaea muscipula", "Apis mellifera", "Aurelia aurita"}, Correct: 1},
			{Prompt: "Which plant specimen represents an ancient vascular lineage?", Options: []string{"The Oak Tree", "The Fern", "The Flytrap", "The Rose"}, Correct: 1},
			{Prompt: "Plants are 'autotrophs' because they build food from...?", Options: []string{"Other insects", "Sunlight and CO2", "Soil alone", "Rain water"}, Correct: 1},
		},
	},
}

// Builtin returns the catalog compiled into the binary.
func Builtin() *Catalog {
	c, err := New(builtinModules)
	if err != nil {
		panic("catalog: builtin content invalid: " + err.Error())
	}
	return c
}
