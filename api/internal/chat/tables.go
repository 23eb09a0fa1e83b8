package chat

// Порядок правил важен: побеждает первое совпадение.
var French = Assistant{
	Rules: []Rule{
		{"quelle couleur", "Les couleurs sont partout ! Je peux voir le rouge comme une pomme, le bleu comme le ciel, le vert comme l'herbe, et plein d'autres belles couleurs !"},
		{"pourquoi rouge", "Le rouge est une couleur chaude et joyeuse ! On la trouve dans les fraises, les cœurs et les voitures de pompiers !"},
		{"pourquoi bleu", "Le bleu est la couleur du ciel et de l'océan ! C'est une couleur calme et apaisante."},
		{"pourquoi vert", "Le vert est la couleur de la nature ! Les feuilles, l'herbe et les grenouilles sont vertes !"},
		{"grand", "Quand quelque chose est grand, ça veut dire que c'est plus gros que la normale ! Comme un éléphant ou un grand arbre !"},
		{"petit", "Quand quelque chose est petit, ça veut dire que c'est très mignon et facile à tenir dans tes mains, comme une souris ou un papillon !"},
		{"moyen", "Moyen, ça veut dire ni trop grand ni trop petit, juste la bonne taille ! Comme un chat ou un livre !"},
		{"qu'est-ce que c'est", "Montre-moi l'objet avec la caméra et je te dirai ce que c'est ! Je suis très bon pour reconnaître les jouets et les objets !"},
		{"comment ça marche", "Chaque objet a sa propre façon de fonctionner ! Les voitures roulent, les balles rebondissent, et les livres se lisent !"},
		{"bonjour", "Bonjour mon petit ami ! Je suis ravi de te parler aujourd'hui ! Comment vas-tu ?"},
		{"salut", "Salut ! Je suis ton assistant magique ! Je suis là pour t'aider à reconnaître tes jouets et répondre à tes questions !"},
		{"merci", "De rien mon petit héros ! J'adore t'aider ! Si tu as d'autres questions, n'hésite pas à me demander !"},
		{"pourquoi", "C'est une excellente question ! Les enfants curieux comme toi posent les meilleures questions ! Peux-tu être plus précis sur ce que tu veux savoir ?"},
		{"comment", "Bonne question ! Je peux t'expliquer plein de choses ! Dis-moi exactement ce que tu veux savoir !"},
		{"aide", "Bien sûr que je vais t'aider ! Je suis là pour ça ! Montre-moi ce que tu veux savoir avec la caméra !"},
		{"j'y arrive pas", "Ne t'inquiète pas ! Tu es très intelligent et tu peux y arriver ! Essayons ensemble étape par étape !"},
		{"c'est difficile", "Je comprends que ça peut être difficile parfois ! Mais tu es très courageux ! Prenons notre temps et faisons-le ensemble !"},
		{"ranger", "Ranger, c'est mettre chaque chose à sa place ! Ça rend ta chambre plus belle et tu retrouves tes jouets plus facilement !"},
		{"pourquoi ranger", "On range pour que tout soit organisé et propre ! Comme ça, tu peux jouer plus facilement et tes parents sont contents !"},
	},
	Overrides: []Override{
		{[]string{"qui es-tu", "tu es qui"}, "Je suis ton assistant magique ! Je peux voir tes jouets avec la caméra et t'aider à les reconnaître ! Je suis là pour jouer et apprendre avec toi !"},
		{[]string{"âge"}, "Je n'ai pas d'âge comme toi ! Je suis un assistant magique qui vit dans l'ordinateur pour t'aider ! Et toi, quel âge as-tu ?"},
		{[]string{"jeu", "jouer"}, "J'adore jouer ! Nous pouvons jouer au jeu de reconnaissance d'objets ! Montre-moi tes jouets et je te dirai tout sur eux !"},
	},
	Fallback: "Je ne suis pas sûr de comprendre ta question, mais je suis là pour t'aider ! Peux-tu me poser ta question d'une autre façon ?",
	Encouragements: []string{
		" Tu es très intelligent !",
		" Continue à poser des questions !",
		" J'adore ta curiosité !",
		" Tu apprends très vite !",
		" C'est formidable !",
	},
	MinQuestionLen: 10,
}

var English = Assistant{
	Rules: []Rule{
		{"what colo", "Colours are everywhere! Red like an apple, blue like the sky, green like the grass, and lots more!"},
		{"big", "When something is big, it is larger than usual! Like an elephant or a tall tree!"},
		{"small", "When something is small, it fits easily in your hands, like a mouse or a butterfly!"},
		{"what is this", "Show me the object with the camera and I'll tell you what it is!"},
		{"hello", "Hello my little friend! I'm so happy to talk with you today! How are you?"},
		{"thank", "You're welcome, little hero! I love helping you!"},
		{"why tidy", "We tidy so everything is easy to find, and you can play more easily!"},
		{"tidy", "Tidying means putting everything back in its place! Your room looks nicer and you find your toys faster!"},
		{"why", "What a great question! Curious kids ask the best questions! Can you tell me more?"},
		{"help", "Of course I'll help you! Show me what you want to know with the camera!"},
	},
	Overrides: []Override{
		{[]string{"who are you"}, "I'm your magic assistant! I can see your toys with the camera and help you recognise them!"},
		{[]string{"how old"}, "I don't have an age like you! I'm a magic assistant living in the computer. How old are you?"},
		{[]string{"game", "play"}, "I love playing! Let's play the object game! Show me your toys and I'll tell you all about them!"},
	},
	Fallback: "I'm not sure I understand, but I'm here to help! Can you ask me another way?",
	Encouragements: []string{
		" You're very clever!",
		" Keep asking questions!",
		" I love your curiosity!",
		" You learn so fast!",
		" That's wonderful!",
	},
	MinQuestionLen: 10,
}
