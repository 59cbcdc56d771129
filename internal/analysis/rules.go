package analysis

import (
	"regexp"
	"strings"

	"testinsight-backend/internal/taxonomy"
)

// Matcher reports whether normalized question text belongs to a topic.
type Matcher func(text string) bool

// Rule pairs a topic label with its matcher. Rules are evaluated in order and
// the first match wins.
type Rule struct {
	Topic string
	Match Matcher
}

// contains matches any literal substring.
func contains(subs ...string) Matcher {
	return func(text string) bool {
		for _, s := range subs {
			if strings.Contains(text, s) {
				return true
			}
		}
		return false
	}
}

// words matches any of the given whole words.
func words(ws ...string) Matcher {
	quoted := make([]string, len(ws))
	for i, w := range ws {
		quoted[i] = regexp.QuoteMeta(w)
	}
	return pattern(`\b(?:` + strings.Join(quoted, "|") + `)\b`)
}

func pattern(expr string) Matcher {
	re := regexp.MustCompile(expr)
	return re.MatchString
}

func anyOf(ms ...Matcher) Matcher {
	return func(text string) bool {
		for _, m := range ms {
			if m(text) {
				return true
			}
		}
		return false
	}
}

var trigFunctions = pattern(`\b(?:sin|cos|tan|cot|sec|cosec|csc)\b`)

func defaultRules() map[taxonomy.Family][]Rule {
	return map[taxonomy.Family][]Rule{
		taxonomy.Mathematics: mathRules(),
		taxonomy.Physics:     physicsRules(),
		taxonomy.Chemistry:   chemistryRules(),
		taxonomy.Biology:     biologyRules(),
	}
}

// Arithmetic is checked before linear equations and algebra, so plain
// operator expressions never land in the algebra buckets.
func mathRules() []Rule {
	return []Rule{
		{"Percentages", anyOf(contains("%"), words("percent", "percentage", "percentages"))},
		{"Fractions", anyOf(
			words("fraction", "fractions", "numerator", "denominator"),
			pattern(`\b\d+\s*/\s*\d+\b`),
		)},
		{"Trigonometry", anyOf(trigFunctions, contains("trigonometr"))},
		{"Calculus", anyOf(
			words("derivative", "derivatives", "differentiate", "integral", "integrals", "integrate", "limit", "limits", "maxima", "minima"),
			contains("d/dx", "dy/dx", "differentiation", "integration"),
		)},
		{"Logarithms", anyOf(words("log", "ln"), contains("logarithm"))},
		{"Probability", words("probability", "dice", "die", "coin", "coins", "odds", "random", "randomly")},
		{"Statistics", anyOf(
			words("mean", "median", "mode", "variance", "average", "statistics", "range"),
			contains("standard deviation"),
		)},
		{"Sequences and Series", anyOf(
			words("sequence", "sequences", "series", "progression"),
			contains("nth term", "common difference", "common ratio"),
		)},
		{"Matrices", words("matrix", "matrices", "determinant", "transpose")},
		{"Complex Numbers", anyOf(
			contains("complex number", "imaginary"),
			pattern(`\bi\s*\^\s*2\b|\bi²`),
		)},
		{"Quadratic Equations", anyOf(
			words("quadratic", "discriminant"),
			contains("roots of"),
			// a squared single-letter variable; "m" and letters inside words
			// such as "cm²" are area units
			pattern(`(?:^|[^a-z])[a-ln-z]\s*(?:\^\s*2|²)`),
			pattern(`(?:^|[^a-z])m\s*(?:\^\s*2|²)\s*[+\-]\s*\d*[a-z]`),
		)},
		{"Coordinate Geometry", anyOf(
			words("coordinate", "coordinates", "slope", "midpoint", "gradient", "intercept", "axis"),
			pattern(`\(\s*-?\d+(?:\.\d+)?\s*,\s*-?\d+(?:\.\d+)?\s*\)`),
		)},
		{"Geometry", words(
			"triangle", "triangles", "circle", "circles", "angle", "angles", "area", "perimeter",
			"radius", "diameter", "polygon", "rectangle", "parallelogram", "trapezium", "volume",
			"cylinder", "cone", "sphere", "hypotenuse", "circumference",
		)},
		{"Basic Arithmetic", anyOf(
			pattern(`\b\d+(?:\.\d+)?\s*[+\-*×÷]\s*\d+(?:\.\d+)?\b`),
			words("sum", "product", "quotient", "remainder", "multiply", "divide", "subtract", "add",
				"addition", "subtraction", "multiplication", "division"),
		)},
		{"Linear Equations", anyOf(
			contains("linear equation", "solve for", "simultaneous"),
			pattern(`\b\d*[a-z]\s*[+\-]\s*\d+\s*=\s*-?\d+`),
			pattern(`\b\d+[a-z]\s*=\s*-?\d+`),
		)},
		{"Basic Algebra", anyOf(
			words("algebra", "algebraic", "expression", "expressions", "simplify", "factorise", "factorize",
				"expand", "polynomial", "variable", "variables"),
			pattern(`\b\d+[a-z]\b`),
		)},
	}
}

func physicsRules() []Rule {
	return []Rule{
		{"Modern Physics", anyOf(
			words("photon", "photons", "quantum", "nucleus", "nuclear", "nuclei", "relativity", "semiconductor", "semiconductors", "isotope"),
			contains("photoelectric", "radioactiv", "half-life", "half life", "de broglie", "x-ray", "work function"),
		)},
		{"Electrostatics", anyOf(
			words("charge", "charges", "charged", "coulomb", "coulombs", "capacitor", "capacitors", "capacitance", "dielectric"),
			contains("electric field", "electric potential", "electrostatic", "gauss"),
		)},
		{"Current Electricity", anyOf(
			words("current", "resistance", "resistor", "resistors", "ohm", "ohms", "voltage", "circuit", "circuits", "ammeter", "voltmeter", "emf"),
			contains("potential difference", "kirchhoff"),
		)},
		{"Magnetism", anyOf(
			contains("magnet", "solenoid", "lorentz", "electromagnetic induction"),
			words("flux", "inductance", "inductor", "tesla"),
		)},
		{"Mechanics", words(
			"force", "forces", "newton", "newtons", "momentum", "friction", "frictional", "torque",
			"inertia", "impulse", "tension", "collision", "equilibrium",
		)},
		{"Gravitation", anyOf(
			contains("gravitation", "escape velocity", "kepler"),
			words("orbit", "orbits", "orbital", "satellite", "satellites", "planet", "planets"),
		)},
		{"Optics", anyOf(
			words("lens", "lenses", "mirror", "mirrors", "refraction", "reflection", "refractive", "prism", "focal", "image"),
			contains("total internal", "optical"),
		)},
		{"Kinematics", anyOf(
			contains("accelerat", "projectile", "displacement", "free fall"),
			words("velocity", "speed", "motion", "distance"),
		)},
		{"Work, Energy and Power", anyOf(
			contains("work done", "kinetic energy", "potential energy"),
			words("energy", "power", "joule", "joules", "watt", "watts", "work"),
		)},
		{"Thermodynamics", anyOf(
			contains("thermodynamic", "thermal", "specific heat", "calorimetr", "isothermal", "adiabatic"),
			words("heat", "temperature", "entropy", "gas", "gases", "kelvin"),
		)},
		{"Waves and Oscillations", anyOf(
			contains("oscillat", "wavelength", "harmonic", "resonan", "doppler"),
			words("wave", "waves", "frequency", "amplitude", "pendulum", "sound", "shm"),
		)},
		{"Trigonometry", anyOf(trigFunctions, contains("trigonometr"))},
	}
}

// Periodic trends are checked before atomic structure: "electronegativity"
// contains "electron".
func chemistryRules() []Rule {
	return []Rule{
		{"Organic Chemistry", anyOf(
			contains("organic", "alkane", "alkene", "alkyne", "benzene", "aldehyde", "ketone", "carboxylic",
				"hydrocarbon", "isomer", "iupac", "functional group", "polymer"),
			words("alcohol", "alcohols", "ester", "esters"),
		)},
		{"Electrochemistry", anyOf(
			contains("electrochem", "electrolysis", "electrolytic", "electrode", "galvanic", "nernst", "cell potential", "faraday"),
			words("anode", "cathode"),
		)},
		{"Redox Reactions", contains("redox", "oxidation", "oxidising", "oxidizing", "oxidised", "oxidized", "reducing agent", "reduction")},
		{"Acids and Bases", words(
			"acid", "acids", "acidic", "base", "bases", "alkali", "alkaline", "ph", "pka", "pkb",
			"buffer", "neutralisation", "neutralization",
		)},
		{"Chemical Equilibrium", anyOf(contains("equilibri", "le chatelier", "reversible"), words("kc", "kp"))},
		{"Chemical Kinetics", contains(
			"rate of reaction", "reaction rate", "rate constant", "order of reaction", "rate law",
			"activation energy", "half-life", "catalys",
		)},
		{"Thermochemistry", contains("enthalp", "exothermic", "endothermic", "hess", "gibbs", "entropy", "heat of", "bond energy")},
		{"Solutions", anyOf(
			contains("molarity", "molality", "solute", "solvent", "osmotic", "raoult", "dilution", "concentration"),
			words("solution", "solutions"),
		)},
		{"Stoichiometry", anyOf(
			pattern(`\bmoles?\b`),
			contains("molar mass", "avogadro", "stoichiometr", "limiting reagent", "empirical formula", "percentage yield", "balanced equation"),
		)},
		{"Periodic Table", anyOf(
			contains("periodic", "electronegativ", "ionisation energy", "ionization energy", "atomic radius", "atomic radii",
				"electron affinity", "noble gas", "halogen"),
			words("group", "groups", "period", "periods"),
		)},
		{"Atomic Structure", anyOf(
			words("electron", "electrons", "proton", "protons", "neutron", "neutrons", "orbital", "orbitals", "isotope", "isotopes", "bohr"),
			contains("atomic number", "mass number", "electronic configuration", "electron configuration", "quantum number"),
		)},
		{"Chemical Bonding", contains("bond", "hybridi", "vsepr", "lewis", "covalent", "ionic", "molecular geometry", "polar")},
	}
}

func biologyRules() []Rule {
	return []Rule{
		{"Cell Biology", anyOf(
			contains("mitochondri", "organelle", "ribosom", "mitosis", "meiosis", "chloroplast", "cytoplasm",
				"endoplasmic", "golgi", "lysosom"),
			words("cell", "cells", "membrane", "nucleus"),
		)},
		{"Genetics", anyOf(
			contains("heredit", "inherit", "mendel", "genotype", "phenotype", "mutation", "chromosom", "allele"),
			words("gene", "genes", "dna", "rna", "dominant", "recessive"),
		)},
		{"Evolution", contains("evolution", "natural selection", "darwin", "speciation", "fossil", "adaptation")},
		{"Ecology", anyOf(
			contains("ecosystem", "food chain", "food web", "habitat", "biodiversity", "ecolog", "biome", "predator", "trophic"),
			words("population", "populations"),
		)},
		{"Human Physiology", anyOf(
			contains("digest", "nervous", "hormon", "kidney", "blood", "lung", "heart", "neuron", "excret"),
			words("brain", "liver"),
		)},
		{"Plant Physiology", anyOf(
			contains("photosynth", "transpiration", "xylem", "phloem", "stomata", "chlorophyll"),
			words("plant", "plants", "root", "roots", "leaf", "leaves"),
		)},
		{"Biomolecules", contains("protein", "carbohydrate", "lipid", "enzyme", "amino acid", "vitamin", "biomolecule", "nucleotide")},
		{"Reproduction", contains("reproduct", "fertili", "pollinat", "gamete", "embryo", "zygote")},
	}
}
