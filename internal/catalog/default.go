package catalog

import "github.com/boisvert/sylva/internal/model"

// Default returns the built-in reference catalog: the classic French
// forest sanitary set. Seeded when no catalog file exists.
func Default() []model.IssueDefinition {
	return []model.IssueDefinition{
		{
			ID:                 "processionnaire-pin",
			Name:               "Processionnaire du pin",
			Category:           model.CategoryPest,
			Severity:           0.7,
			BaselineConfidence: 0.9,
			AffectedSpecies:    []string{"Pinus sylvestris", "Pinus nigra", "Pinus pinaster", "Cedrus atlantica"},
			Symptoms:           []string{"Défoliation", "Nids soyeux"},
			Description:        "Chenille défoliatrice des pins, urticante, active en hiver.",
			Treatments: []model.Treatment{
				{Name: "Lutte biologique (Bacillus thuringiensis)", Description: "Pulvérisation aérienne ou terrestre à l'automne.", Efficacy: 0.85, CostTier: "medium"},
				{Name: "Échenillage mécanique", Description: "Retrait et destruction des nids en hiver.", Efficacy: 0.6, CostTier: "low"},
				{Name: "Piégeage à phéromones", Description: "Capture des papillons mâles en été.", Efficacy: 0.5, CostTier: "low"},
			},
			Prevention: []string{"Diversification des essences", "Installation de nichoirs à mésanges", "Surveillance hivernale des nids"},
			SpreadingRisk: 0.8,
			References:    []string{"DSF fiche processionnaire du pin"},
		},
		{
			ID:                 "scolyte-typographe",
			Name:               "Scolyte typographe",
			Category:           model.CategoryPest,
			Severity:           0.9,
			BaselineConfidence: 0.85,
			AffectedSpecies:    []string{"Picea abies", "Picea sitchensis"},
			Symptoms:           []string{"Trous d'écorce", "Écoulement de résine", "Rougissement du houppier", "Galeries sous écorce"},
			Description:        "Coléoptère sous-cortical de l'épicéa, pullulations après sécheresse ou chablis.",
			Treatments: []model.Treatment{
				{Name: "Coupe sanitaire rapide", Description: "Exploitation et évacuation des bois colonisés sous six semaines.", Efficacy: 0.8, CostTier: "high"},
				{Name: "Écorçage des grumes", Description: "Écorçage des bois stockés en forêt.", Efficacy: 0.65, CostTier: "medium"},
			},
			Prevention: []string{"Évacuation rapide des chablis", "Limitation des stocks de bois en forêt", "Surveillance après épisode de sécheresse"},
			SpreadingRisk: 0.9,
			References:    []string{"DSF bilan scolytes épicéa"},
		},
		{
			ID:                 "chalarose-frene",
			Name:               "Chalarose du frêne",
			Category:           model.CategoryDisease,
			Severity:           0.85,
			BaselineConfidence: 0.8,
			AffectedSpecies:    []string{"Fraxinus excelsior", "Fraxinus angustifolia"},
			Symptoms:           []string{"Flétrissement", "Nécroses de l'écorce", "Mortalité des branches", "Défoliation"},
			Description:        "Maladie fongique du frêne (Hymenoscyphus fraxineus) provoquant des dépérissements massifs.",
			Treatments: []model.Treatment{
				{Name: "Coupe des sujets dépérissants", Description: "Récolte avant dépréciation du bois et chute de branches.", Efficacy: 0.5, CostTier: "medium"},
			},
			Prevention: []string{"Conservation des frênes tolérants", "Pas de plantation de frêne en zone contaminée"},
			SpreadingRisk: 0.85,
			References:    []string{"DSF note chalarose"},
		},
		{
			ID:                 "oidium-chene",
			Name:               "Oïdium du chêne",
			Category:           model.CategoryDisease,
			Severity:           0.4,
			BaselineConfidence: 0.75,
			AffectedSpecies:    []string{"Quercus robur", "Quercus petraea", "Quercus pubescens"},
			Symptoms:           []string{"Feutrage blanc", "Taches foliaires", "Jaunissement"},
			Description:        "Champignon foliaire du chêne, surtout dommageable sur semis et rejets.",
			Treatments: []model.Treatment{
				{Name: "Traitement au soufre", Description: "Pulvérisation en pépinière ou régénération.", Efficacy: 0.7, CostTier: "low"},
			},
			Prevention: []string{"Éviter les tailles tardives", "Favoriser la circulation d'air dans les régénérations"},
			SpreadingRisk: 0.5,
			References:    []string{"DSF fiche oïdium"},
		},
		{
			ID:                 "armillaire",
			Name:               "Armillaire couleur de miel",
			Category:           model.CategoryDisease,
			Severity:           0.75,
			BaselineConfidence: 0.7,
			AffectedSpecies:    []string{"toutes espèces"},
			Symptoms:           []string{"Pourriture racinaire", "Mycélium sous écorce", "Dépérissement du houppier", "Écoulement de résine"},
			Description:        "Pourridié racinaire s'attaquant aux arbres affaiblis, foyers circulaires.",
			Treatments: []model.Treatment{
				{Name: "Dessouchage des foyers", Description: "Extraction des souches contaminées et des racines principales.", Efficacy: 0.6, CostTier: "high"},
			},
			Prevention: []string{"Maintien de la vigueur des peuplements", "Éviter les blessures de racine en exploitation"},
			SpreadingRisk: 0.6,
			References:    []string{"DSF fiche armillaire"},
		},
		{
			ID:                 "secheresse",
			Name:               "Sécheresse",
			Category:           model.CategoryAbiotic,
			Severity:           0.8,
			BaselineConfidence: 0.75,
			AffectedSpecies:    []string{"toutes espèces"},
			Symptoms:           []string{"Défoliation", "Jaunissement", "Microphyllie", "Mortalité des branches"},
			Description:        "Stress hydrique prolongé entraînant défoliation et descente de cime.",
			Treatments: []model.Treatment{
				{Name: "Éclaircie de détente", Description: "Réduction de la concurrence pour l'eau.", Efficacy: 0.55, CostTier: "medium"},
			},
			Prevention: []string{"Essences adaptées à la station", "Éclaircies précoces et régulières", "Préservation des sols"},
			SpreadingRisk: 0.3,
			References:    []string{"DSF bilan sécheresse"},
		},
		{
			ID:                 "gel-tardif",
			Name:               "Gel tardif",
			Category:           model.CategoryAbiotic,
			Severity:           0.5,
			BaselineConfidence: 0.7,
			AffectedSpecies:    []string{"toutes espèces"},
			Symptoms:           []string{"Brunissement des pousses", "Flétrissement des jeunes feuilles", "Nécroses"},
			Description:        "Dégâts de gel printanier sur pousses débourrées, surtout en fond de vallon.",
			Treatments:         []model.Treatment{},
			Prevention:         []string{"Abris latéraux pour les régénérations", "Choix de provenances à débourrement tardif"},
			SpreadingRisk:      0.1,
			References:         []string{"DSF fiche gels tardifs"},
		},
		{
			ID:                 "carence-nutritive",
			Name:               "Carence nutritive",
			Category:           model.CategoryPhysiological,
			Severity:           0.45,
			BaselineConfidence: 0.6,
			AffectedSpecies:    []string{"toutes espèces"},
			Symptoms:           []string{"Jaunissement", "Chlorose", "Croissance réduite"},
			Description:        "Déficit en éléments minéraux (magnésie, azote) se traduisant par une chlorose diffuse.",
			Treatments: []model.Treatment{
				{Name: "Amendement calco-magnésien", Description: "Apport correcteur sur sols acides appauvris.", Efficacy: 0.65, CostTier: "medium"},
			},
			Prevention: []string{"Maintien des rémanents au sol", "Diagnostic foliaire périodique"},
			SpreadingRisk: 0.1,
			References:    []string{"Guide des carences forestières"},
		},
	}
}
