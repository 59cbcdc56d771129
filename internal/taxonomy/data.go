package taxonomy

func defaultCatalogs() map[Family][]string {
	return map[Family][]string{
		Mathematics: {
			"Percentages",
			"Fractions",
			"Trigonometry",
			"Calculus",
			"Logarithms",
			"Probability",
			"Statistics",
			"Sequences and Series",
			"Matrices",
			"Complex Numbers",
			"Quadratic Equations",
			"Coordinate Geometry",
			"Geometry",
			"Basic Arithmetic",
			"Linear Equations",
			"Basic Algebra",
		},
		Physics: {
			"Modern Physics",
			"Mechanics",
			"Gravitation",
			"Optics",
			"Kinematics",
			"Work, Energy and Power",
			"Thermodynamics",
			"Waves and Oscillations",
			"Electrostatics",
			"Current Electricity",
			"Magnetism",
			"Trigonometry",
		},
		Chemistry: {
			"Organic Chemistry",
			"Electrochemistry",
			"Redox Reactions",
			"Acids and Bases",
			"Chemical Equilibrium",
			"Chemical Kinetics",
			"Thermochemistry",
			"Solutions",
			"Stoichiometry",
			"Periodic Table",
			"Atomic Structure",
			"Chemical Bonding",
		},
		Biology: {
			"Genetics",
			"Evolution",
			"Ecology",
			"Cell Biology",
			"Biomolecules",
			"Human Physiology",
			"Plant Physiology",
			"Reproduction",
		},
	}
}

func defaultAdvice() map[string]AdviceTemplate {
	return map[string]AdviceTemplate{
		"Basic Arithmetic": {
			Description: "Errors in basic arithmetic are costing you marks across the whole paper. Speed and accuracy with the four operations need to become automatic.",
			ActionItems: []string{
				"Do a 10-minute mental arithmetic drill every morning",
				"Practise multiplication tables up to 20",
				"Check every calculation by estimating the answer first",
			},
			Immediate: "Complete a 50-question arithmetic drill without a calculator",
			ShortTerm: "Do a timed 10-minute arithmetic drill daily and log your score",
			LongTerm:  "Keep a weekly arithmetic speed test in your routine until you score above 95%",
		},
		"Fractions": {
			Description: "Fractions questions show gaps in finding common denominators and simplifying results.",
			ActionItems: []string{
				"Revise equivalent fractions and the least common multiple",
				"Practise adding, subtracting, multiplying and dividing fractions",
				"Convert between mixed numbers, improper fractions and decimals",
			},
			Immediate: "Rework today's fraction mistakes step by step, writing every common denominator",
			ShortTerm: "Solve 20 mixed fraction operations daily",
			LongTerm:  "Take a weekly word-problem set that uses fractions in context",
		},
		"Percentages": {
			Description: "Percentage problems need a firmer link between fractions, decimals and percentage change.",
			ActionItems: []string{
				"Memorise common fraction-percentage equivalents",
				"Practise percentage increase, decrease and reverse percentages",
				"Solve profit, loss and discount word problems",
			},
			Immediate: "Write out the fraction-percentage table for halves to twentieths",
			ShortTerm: "Solve 15 percentage-change problems daily",
			LongTerm:  "Practise one set of commercial maths problems (interest, profit, discount) each week",
		},
		"Basic Algebra": {
			Description: "Algebraic manipulation is slowing you down. Simplifying expressions and handling signs need more practice.",
			ActionItems: []string{
				"Revise the rules for expanding and factorising expressions",
				"Practise collecting like terms with negative coefficients",
				"Substitute values back to check every simplification",
			},
			Immediate: "Redo today's algebra mistakes and check each step by substitution",
			ShortTerm: "Simplify 20 expressions daily, mixing expansion and factorisation",
			LongTerm:  "Work through one chapter of algebra exercises each week",
		},
		"Linear Equations": {
			Description: "Solving linear equations needs a more systematic approach to isolating the variable.",
			ActionItems: []string{
				"Practise one- and two-step equations until they are automatic",
				"Solve equations with variables on both sides",
				"Translate word problems into equations before solving",
			},
			Immediate: "Solve 20 linear equations and verify each answer by substitution",
			ShortTerm: "Practise 10 word problems that lead to linear equations daily",
			LongTerm:  "Move on to simultaneous equations weekly once single equations are reliable",
		},
		"Quadratic Equations": {
			Description: "Quadratic equations need more work on factorisation, the quadratic formula and the discriminant.",
			ActionItems: []string{
				"Revise factorisation of quadratics",
				"Practise the quadratic formula and completing the square",
				"Use the discriminant to predict the nature of roots",
			},
			Immediate: "Solve 10 quadratics using all three methods and compare",
			ShortTerm: "Solve 10 quadratic equations daily, alternating methods",
			LongTerm:  "Practise weekly problems on the relation between roots and coefficients",
		},
		"Trigonometry": {
			Description: "Trigonometric ratios and standard angle values are not yet reliable.",
			ActionItems: []string{
				"Memorise sin, cos and tan values for 0°, 30°, 45°, 60° and 90°",
				"Practise the basic identities and their rearrangements",
				"Solve height-and-distance problems with diagrams",
			},
			Immediate: "Write the standard angle table from memory until it is error-free",
			ShortTerm: "Solve 15 identity and ratio problems daily",
			LongTerm:  "Practise weekly applications of trigonometry in geometry and physics",
		},
		"Calculus": {
			Description: "Calculus questions show gaps in differentiation and integration techniques.",
			ActionItems: []string{
				"Revise the derivatives of standard functions and the chain rule",
				"Practise integration by substitution and by parts",
				"Solve application problems on maxima, minima and areas",
			},
			Immediate: "Differentiate and integrate 20 standard functions from memory",
			ShortTerm: "Practise 10 derivative and 10 integral problems daily",
			LongTerm:  "Work through one weekly set of calculus application problems",
		},
		"Geometry": {
			Description: "Geometry problems need better use of area, perimeter and angle properties.",
			ActionItems: []string{
				"Revise formulas for area, perimeter and volume of standard shapes",
				"Practise angle properties of triangles, polygons and circles",
				"Always sketch a labelled diagram before solving",
			},
			Immediate: "Make a formula sheet for areas and volumes and review it",
			ShortTerm: "Solve 10 geometry problems daily with a labelled diagram for each",
			LongTerm:  "Practise weekly proofs and multi-step geometry problems",
		},
		"Probability": {
			Description: "Probability questions show confusion between independent, dependent and mutually exclusive events.",
			ActionItems: []string{
				"Revise the addition and multiplication rules",
				"List sample spaces explicitly for small experiments",
				"Practise conditional probability with tree diagrams",
			},
			Immediate: "Redo today's probability mistakes by writing out the sample space",
			ShortTerm: "Solve 10 probability problems daily using tree diagrams",
			LongTerm:  "Practise weekly mixed problems on permutations, combinations and probability",
		},
		"Mechanics": {
			Description: "Mechanics problems need a more careful application of Newton's laws and free-body diagrams.",
			ActionItems: []string{
				"Draw a free-body diagram for every force problem",
				"Revise Newton's three laws with worked examples",
				"Practise problems on friction, tension and momentum",
			},
			Immediate: "Redo today's force problems starting from a free-body diagram",
			ShortTerm: "Solve 10 force and momentum problems daily",
			LongTerm:  "Practise weekly multi-body and connected-system problems",
		},
		"Kinematics": {
			Description: "Motion problems show errors in choosing and applying the equations of motion.",
			ActionItems: []string{
				"Revise the three equations of motion and when each applies",
				"Practise reading displacement-time and velocity-time graphs",
				"Solve projectile motion problems by splitting components",
			},
			Immediate: "List the known and unknown quantities for each missed motion problem and re-solve",
			ShortTerm: "Solve 10 equations-of-motion problems daily",
			LongTerm:  "Practise weekly projectile and relative motion problems",
		},
		"Current Electricity": {
			Description: "Circuit problems show gaps in Ohm's law and series/parallel combinations.",
			ActionItems: []string{
				"Revise Ohm's law and Kirchhoff's rules",
				"Practise reducing series and parallel resistor networks",
				"Solve power and energy problems in circuits",
			},
			Immediate: "Redraw each missed circuit and reduce it step by step",
			ShortTerm: "Solve 10 circuit problems daily",
			LongTerm:  "Practise weekly problems on meters, bridges and potentiometers",
		},
		"Stoichiometry": {
			Description: "Mole concept calculations need more practice with conversions and limiting reagents.",
			ActionItems: []string{
				"Revise the mole concept and molar mass calculations",
				"Practise balancing equations before every calculation",
				"Solve limiting reagent and percentage yield problems",
			},
			Immediate: "Balance and solve each missed stoichiometry question again with units",
			ShortTerm: "Solve 10 mole-concept problems daily",
			LongTerm:  "Practise weekly multi-step problems combining stoichiometry and solutions",
		},
		"Organic Chemistry": {
			Description: "Organic chemistry needs stronger recall of functional groups, nomenclature and reaction mechanisms.",
			ActionItems: []string{
				"Revise IUPAC nomenclature rules",
				"Make a chart of functional groups and their characteristic reactions",
				"Practise reaction mechanisms with arrow pushing",
			},
			Immediate: "Name 20 organic compounds and check against the IUPAC rules",
			ShortTerm: "Review one reaction type daily and write its mechanism from memory",
			LongTerm:  "Practise weekly conversion and synthesis problems",
		},
		"Chemical Bonding": {
			Description: "Bonding questions show gaps in predicting structure, hybridisation and polarity.",
			ActionItems: []string{
				"Revise VSEPR theory and molecular shapes",
				"Practise assigning hybridisation to central atoms",
				"Compare ionic, covalent and metallic bonding properties",
			},
			Immediate: "Draw Lewis structures for every molecule in today's missed questions",
			ShortTerm: "Predict shape and hybridisation for 10 molecules daily",
			LongTerm:  "Practise weekly problems on molecular orbital theory",
		},
		"Genetics": {
			Description: "Genetics questions need more practice with crosses and inheritance patterns.",
			ActionItems: []string{
				"Revise Mendel's laws with monohybrid and dihybrid crosses",
				"Practise Punnett squares for sex-linked traits",
				"Work through pedigree analysis problems",
			},
			Immediate: "Redo today's crosses with a full Punnett square for each",
			ShortTerm: "Solve 5 inheritance problems daily",
			LongTerm:  "Practise weekly problems on molecular genetics and gene expression",
		},
	}
}

func defaultLinks() []ConceptLink {
	return []ConceptLink{
		{"Basic Arithmetic", "Fractions", "Your strong arithmetic is the foundation for fractions: the same operations apply to numerators and denominators once you find a common denominator."},
		{"Basic Arithmetic", "Percentages", "Your arithmetic skills carry directly into percentages, which are multiplication and division by 100."},
		{"Fractions", "Percentages", "Percentages are fractions with a denominator of 100, so your fraction skills can be reused for percentage problems."},
		{"Basic Algebra", "Linear Equations", "Your algebra skills are the tools for linear equations: isolating the variable is just simplification applied to both sides."},
		{"Linear Equations", "Quadratic Equations", "Quadratics reduce to linear equations after factorisation, so your equation-solving strength will transfer."},
		{"Basic Algebra", "Quadratic Equations", "Factorising quadratics relies on the expansion and factorisation you already handle well in algebra."},
		{"Basic Algebra", "Calculus", "Calculus problems are mostly algebraic simplification once the derivative or integral is written down."},
		{"Geometry", "Trigonometry", "Trigonometric ratios come from right-triangle geometry, which you already understand well."},
		{"Trigonometry", "Mechanics", "Resolving forces into components uses the sine and cosine ratios you have mastered."},
		{"Kinematics", "Mechanics", "You describe motion well; Newton's laws explain why that motion happens, so connect each force problem to its motion."},
		{"Mechanics", "Work, Energy and Power", "Work and energy are forces applied over a distance, so your command of forces is the starting point."},
		{"Mechanics", "Gravitation", "Gravitation applies Newton's laws to the gravitational force, which you already handle well in mechanics."},
		{"Electrostatics", "Current Electricity", "Current is moving charge; relate potential difference in circuits to the electrostatic potential you understand."},
		{"Current Electricity", "Magnetism", "Magnetic effects come from currents, so your circuit knowledge is the entry point to magnetism."},
		{"Probability", "Statistics", "Statistical measures describe the distributions that your probability skills model."},
		{"Statistics", "Probability", "Your comfort with data summaries can anchor probability as long-run relative frequency."},
		{"Atomic Structure", "Chemical Bonding", "Bonding follows from electron configuration, which you have mastered in atomic structure."},
		{"Atomic Structure", "Periodic Table", "Periodic trends are consequences of electron configuration, so build on your atomic structure knowledge."},
		{"Stoichiometry", "Solutions", "Concentration units are mole calculations per volume, a direct extension of your stoichiometry."},
		{"Chemical Bonding", "Organic Chemistry", "Organic reactivity depends on bond polarity and hybridisation, which you already understand."},
		{"Chemical Equilibrium", "Acids and Bases", "Acid-base behaviour is equilibrium applied to proton transfer, so reuse your equilibrium reasoning."},
		{"Cell Biology", "Genetics", "Inheritance happens through cell division, so relate each genetics rule to the cell processes you know."},
	}
}

func defaultGenericConnections() []string {
	return []string{
		"Strengthening the fundamentals of your weaker topics will make the related advanced topics easier to learn.",
		"Relate new problems back to the topics you have already mastered to build a connected understanding.",
	}
}
