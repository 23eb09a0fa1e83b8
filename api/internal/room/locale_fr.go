package room

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"tidy-room/api/internal/vision"
)

type french struct{}

// French is the default locale.
var French Locale = french{}

func (french) Tag() string { return "fr" }

var frLabels = map[string]string{
	"person": "personne", "bicycle": "vélo", "car": "voiture", "motorcycle": "moto",
	"airplane": "avion", "bus": "bus", "train": "train", "truck": "camion", "boat": "bateau",
	"traffic light": "feu de circulation", "fire hydrant": "bouche d'incendie",
	"stop sign": "panneau stop", "parking meter": "parcmètre", "bench": "banc",
	"bird": "oiseau", "cat": "chat", "dog": "chien", "horse": "cheval", "sheep": "mouton",
	"cow": "vache", "elephant": "éléphant", "bear": "ours", "zebra": "zèbre", "giraffe": "girafe",
	"backpack": "sac à dos", "umbrella": "parapluie", "handbag": "sac à main", "tie": "cravate",
	"suitcase": "valise", "frisbee": "frisbee", "skis": "skis", "snowboard": "snowboard",
	"sports ball": "ballon", "kite": "cerf-volant", "baseball bat": "batte de baseball",
	"baseball glove": "gant de baseball", "skateboard": "skateboard", "surfboard": "planche de surf",
	"tennis racket": "raquette de tennis", "bottle": "bouteille", "wine glass": "verre à vin",
	"cup": "tasse", "fork": "fourchette", "knife": "couteau", "spoon": "cuillère", "bowl": "bol",
	"banana": "banane", "apple": "pomme", "sandwich": "sandwich", "orange": "orange",
	"broccoli": "brocoli", "carrot": "carotte", "hot dog": "hot dog", "pizza": "pizza",
	"donut": "beignet", "cake": "gâteau", "chair": "chaise", "couch": "canapé",
	"potted plant": "plante en pot", "bed": "lit", "dining table": "table à manger",
	"toilet": "toilettes", "tv": "télévision", "laptop": "ordinateur portable", "mouse": "souris",
	"remote": "télécommande", "keyboard": "clavier", "cell phone": "téléphone portable",
	"microwave": "micro-ondes", "oven": "four", "toaster": "grille-pain", "sink": "évier",
	"refrigerator": "réfrigérateur", "book": "livre", "clock": "horloge", "vase": "vase",
	"scissors": "ciseaux", "teddy bear": "peluche", "hair drier": "sèche-cheveux",
	"toothbrush": "brosse à dents",
	"toy car": "petite voiture", "doll": "poupée", "pencil": "crayon", "toy": "jouet",
	"ball": "balle", "hand": "main",
}

var frFeminine = map[string]bool{
	"personne": true, "voiture": true, "moto": true, "vache": true, "girafe": true,
	"cravate": true, "valise": true, "batte de baseball": true, "planche de surf": true,
	"raquette de tennis": true, "bouteille": true, "tasse": true, "fourchette": true,
	"cuillère": true, "banane": true, "pomme": true, "carotte": true, "pizza": true,
	"chaise": true, "plante en pot": true, "table à manger": true, "télévision": true,
	"souris": true, "télécommande": true, "peluche": true, "brosse à dents": true,
	"petite voiture": true, "poupée": true, "balle": true, "main": true,
}

func (french) Label(label string) string { return lookup(frLabels, label) }

var frColors = map[string]string{
	"red": "rouge", "green": "vert", "blue": "bleu", "yellow": "jaune", "cyan": "cyan",
	"magenta": "magenta", "white": "blanc", "black": "noir", "gray": "gris",
	"dark red": "rouge foncé", "light red": "rouge clair", "dark green": "vert foncé",
	"light green": "vert clair", "dark blue": "bleu foncé", "light blue": "bleu clair",
	"light yellow": "jaune clair", "orange": "orange", "dark orange": "orange foncé",
	"pink": "rose", "dark pink": "rose foncé", "violet": "violet", "light violet": "violet clair",
	"brown": "marron", "light brown": "marron clair", "beige": "beige", "turquoise": "turquoise",
	"gold": "or", "silver": "argent",
}

func (french) ColorName(c string) string { return lookup(frColors, c) }

func (french) SizeName(s vision.SizeClass) string {
	switch s {
	case vision.SizeLarge:
		return "grand"
	case vision.SizeMedium:
		return "moyen"
	default:
		return "petit"
	}
}

func (french) ZoneName(z vision.Zone) string {
	z = zoneOrUnknown(z)
	v := map[vision.Vertical]string{vision.Top: "en haut", vision.Middle: "au milieu", vision.Bottom: "en bas"}[z.V]
	h := map[vision.Horizontal]string{vision.Left: "à gauche", vision.Center: "au centre", vision.Right: "à droite"}[z.H]
	return v + " " + h
}

// frHAspire: mots en h aspiré, pas d'élision (« le hamac », pas « l'hamac »).
var frHAspire = map[string]bool{
	"hot": true, "hamburger": true, "hamac": true, "hamster": true, "haricot": true,
	"hibou": true, "hérisson": true, "hockey": true, "housse": true, "hache": true,
	"harpe": true, "haut-parleur": true, "hotte": true, "hublot": true, "hangar": true,
}

// frenchArticle: « l' » devant voyelle ou h muet, sinon « le »/« la ».
func frenchArticle(noun string) string {
	r, _ := utf8.DecodeRuneInString(noun)
	first, _, _ := strings.Cut(strings.ToLower(noun), " ")
	if strings.ContainsRune("aeiouhàâéèêëîïôûù", unicode.ToLower(r)) && !frHAspire[first] {
		return "l'"
	}
	if frFeminine[noun] {
		return "la "
	}
	return "le "
}

func frenchIndefinite(noun string) string {
	if frFeminine[noun] {
		return "une "
	}
	return "un "
}

var frEncouragements = []string{
	"Tu fais un excellent travail !",
	"Continue comme ça !",
	"Super effort !",
	"Tu es vraiment doué(e) !",
	"Bravo pour ton aide !",
}

func (french) Encouragements() []string { return frEncouragements }

var frHints = map[string]string{
	"teddy bear":  "Ta peluche aimerait bien retrouver ses amis sur le lit ou dans le coffre !",
	"book":        "Les livres sont contents quand ils sont bien alignés sur l'étagère !",
	"sports ball": "Le ballon a besoin de se reposer après avoir tant rebondi !",
	"ball":        "La balle a besoin de se reposer après avoir tant rebondi !",
	"car":         "Vroum vroum ! La voiture rentre au garage !",
	"toy car":     "Vroum vroum ! La petite voiture rentre au garage !",
	"doll":        "Ta poupée va faire une sieste à sa place !",
	"cup":         "Une tasse rangée, c'est une tasse qui ne se casse pas !",
	"bottle":      "Une bouteille bien rangée ne se renverse pas !",
	"backpack":    "Ton sac à dos sera prêt pour demain !",
	"scissors":    "Les ciseaux se rangent toujours avec soin !",
	"kite":        "Le cerf-volant attend le prochain jour de vent !",
	"cell phone":  "Le téléphone se range loin du lit !",
	"remote":      "Si la télécommande est rangée, on la retrouve toujours !",
	"skateboard":  "Le skateboard se range pour que personne ne glisse dessus !",
	"pencil":      "Les crayons aiment être ensemble dans leur pot !",
}

func (french) Hint(label string) string {
	if h, ok := frHints[strings.ToLower(label)]; ok {
		return h
	}
	return "Chaque chose à sa place, et ta chambre sera magnifique !"
}

func (f french) object(o DetectedObject) string {
	noun := f.Label(o.Label)
	return frenchArticle(noun) + noun + " " + f.ColorName(o.ColorName)
}

func (f french) Matched(o DetectedObject, target vision.Zone, encouragement, hint string) string {
	dst := f.ZoneName(target)
	msg := fmt.Sprintf("J'ai trouvé %s. C'est un objet de taille %s qui est %s de ta chambre. ",
		f.object(o), f.SizeName(o.Size), f.ZoneName(o.Position))
	switch o.Size {
	case vision.SizeSmall:
		msg += fmt.Sprintf("Prends-le soigneusement dans ta main et range-le %s de ta chambre.", dst)
	case vision.SizeMedium:
		msg += fmt.Sprintf("Prends-le à deux mains et place-le %s de ta chambre.", dst)
	default:
		msg += fmt.Sprintf("Demande peut-être de l'aide à un adulte pour le déplacer %s de ta chambre.", dst)
	}
	return joinNonEmpty(msg, encouragement, hint)
}

func (f french) Unmatched(o DetectedObject, hint string) string {
	msg := fmt.Sprintf("J'ai trouvé %s de taille %s %s de ta chambre, mais je ne sais pas exactement où le ranger. Demande à maman.",
		f.object(o), f.SizeName(o.Size), f.ZoneName(o.Position))
	return joinNonEmpty(msg, hint)
}

func (french) NoReference() string {
	return "Demande à maman de prendre une photo de ta chambre bien rangée d'abord!"
}

func (french) AllTidy() string {
	return "Je ne vois aucun jouet spécifique à ranger ou ta chambre est déjà parfaite!"
}

func (french) TasksFound(n int) string { return fmt.Sprintf("J'ai trouvé %d objets à ranger!", n) }

func (french) Progress(l ProgressLevel) string {
	switch l {
	case ProgressAllDone:
		return "Bravo, tout est rangé ! Tu es un vrai champion du rangement !"
	case ProgressAlmostDone:
		return "Presque fini ! Encore un petit effort !"
	case ProgressHalfway:
		return "Tu as fait plus de la moitié ! Super travail !"
	case ProgressGoodStart:
		return "Bon début ! Continue comme ça !"
	default:
		return "C'est parti ! Chaque objet rangé compte !"
	}
}

func (french) ReferenceSaved() string { return "Image de référence uploadée avec succès" }

func (french) ResetDone() string { return "Compteur de tâches réinitialisé avec succès." }

func (french) ObjectsFound(n int) string { return fmt.Sprintf("J'ai trouvé %d objet(s) !", n) }

var frFacts = map[string]string{
	"book":        "Les livres nous aident à apprendre et à rêver !",
	"sports ball": "Les ballons rebondissent et roulent ! Tu peux jouer avec !",
	"pencil":      "Avec les crayons, tu peux dessiner de belles choses !",
	"car":         "Les voitures nous emmènent partout ! Vroum vroum !",
	"toy car":     "Les voitures nous emmènent partout ! Vroum vroum !",
	"teddy bear":  "Les peluches sont douces et parfaites pour les câlins !",
	"doll":        "Les poupées peuvent être tes amies pour jouer !",
}

func (f french) Describe(o DetectedObject) string {
	var size string
	switch o.Size {
	case vision.SizeSmall:
		size = "tout petit et mignon"
	case vision.SizeMedium:
		size = "de taille parfaite pour jouer"
	default:
		size = "assez grand et impressionnant"
	}
	fact, ok := frFacts[strings.ToLower(o.Label)]
	if !ok {
		fact = "C'est un objet très intéressant !"
	}
	noun := f.Label(o.Label)
	return fmt.Sprintf("Je vois que tu tiens %s%s %s ! Il est %s. %s",
		frenchIndefinite(noun), noun, f.ColorName(o.ColorName), size, fact)
}

func (french) NothingInHand() string {
	return "Je ne vois pas d'objet clair dans tes mains ! Peux-tu le montrer un peu plus près de la caméra ?"
}

func joinNonEmpty(parts ...string) string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, " ")
}
