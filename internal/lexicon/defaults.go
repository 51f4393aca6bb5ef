package lexicon

// Default returns the uncompiled Spanish lexicon.
func Default() *Lexicon {
	return &Lexicon{
		SmallTalk: []SmallTalkRule{
			{`^[¡¿\s]*(hola|buenas|buenos dias|buenas tardes|buenas noches)[\s!.?]*$`,
				"¡Hola! Soy GOBI. ¿En qué te ayudo?"},
			{`^[¡¿\s]*(gracias|muchas gracias|te agradezco|perfecto|genial)[\s!.?]*$`,
				"¡Con gusto! ¿Hay algo más en lo que pueda ayudarte?"},
			{`^[¡¿\s]*(adios|hasta luego|nos vemos|chau|chao)[\s!.?]*$`,
				"¡Hasta luego! 👋"},
			{`^[¡¿\s]*(quien eres|que eres)[\s!.?]*$`,
				"Soy GOBI, un asistente que responde dudas frecuentes sobre tus procedimientos y te guía paso a paso."},
			{`^[¡¿\s]*(que puedes hacer|como me ayudas|como puedes ayudarme)[\s!.?]*$`,
				"Puedo buscar en tus archivos y darte un resumen (máx. 300 palabras) con enlaces a la fuente."},
			{`^[¡¿\s]*(ayuda|ayudame|no entiendo|no se)[\s!.?]*$`,
				"Puedo ayudarte si me das un poco más de contexto: ¿qué trámite o módulo estás buscando?"},
		},
		SmallTalkMaxWords: 8,
		DomainHints: []string{
			"documento", "pdf", "docx", "tramite", "expediente", "mesa de partes", "recepcion",
			"referencias", "glosa", "derivar", "firma", "sgd", "contraloria", "formulario", "pagina",
			"paso", "perfil", "instructivo", "consulta", "modulo",
		},

		NegativeLabels:    []string{"enojado", "triste", "ansioso", "disgusto"},
		NegativeThreshold: 0.65,
		PositiveLabels:    []string{"positivo", "sorprendido"},
		PositiveThreshold: 0.70,

		Confirmation:      `^[¿\s]*(esto|eso|este|ese|esta|esa)\s+es\s+(el\s+|la\s+)?(paso|seccion|apartado)(\s+\d+)?[\s?!.]*$`,
		ConfirmationReply: "Sí, así es. Si quieres, te indico qué hacer en el siguiente paso.",

		ProceduralKeywords: []string{
			"paso", "clic", "click", "selecciona", "seleccione", "seleccionar", "ingresa", "ingrese",
			"ingresar", "verifica", "verifique", "verificar", "envia", "envie", "enviar", "deriva",
			"derive", "derivar", "firma", "firmar", "registra", "registrar", "adjunta", "adjuntar",
			"boton", "menu", "opcion", "step", "select", "enter", "verify", "submit", "route",
		},
		StepCues: []string{"paso a paso", "pasos", "procedimiento", "instrucciones", "como hago"},
		Rephrasings: []Rephrasing{
			{"no obstante", "pero"},
			{"sin embargo", "pero"},
			{"asimismo", "también"},
			{"por consiguiente", "por eso"},
			{"en consecuencia", "por eso"},
			{"con la finalidad de", "para"},
			{"con el objeto de", "para"},
			{"a fin de", "para"},
			{"posteriormente", "después"},
			{"previamente", "antes"},
			{"mediante", "con"},
			{"efectuar", "hacer"},
		},
		Stopwords: []string{
			"el", "la", "los", "las", "un", "una", "unos", "unas", "de", "del", "al", "que", "como",
			"para", "por", "con", "sin", "en", "mi", "mis", "tu", "tus", "su", "sus", "me", "te",
			"se", "lo", "le", "les", "y", "o", "pero", "es", "son", "hay", "esto", "eso", "este",
			"esta", "ese", "esa", "donde", "cuando", "cual", "quien", "puedo", "hacer", "necesito",
			"quiero", "tengo", "algo", "sobre", "muy", "mas", "hola", "favor", "porfa",
		},

		Empathy: map[string]string{
			"enojado":  "Entiendo la frustración; vamos a solucionarlo. ",
			"triste":   "Siento que te sientas así; haré lo posible por ayudarte. ",
			"ansioso":  "Tranquilo, te acompaño paso a paso. ",
			"disgusto": "Lamento la molestia; veamos cómo resolverlo. ",
			"negativo": "Lamento la dificultad. ",
		},
		FallbackTemplates: map[string][]string{
			"neutral": {
				"Por el momento no cuento con la información necesaria para responderte.",
				"No encontré información sobre eso en los documentos disponibles.",
				"Lo siento, no tengo datos suficientes para responder esa consulta.",
			},
			"enojado": {
				"Entiendo tu molestia y lamento no tener todavía esa respuesta.",
				"Comprendo la frustración; no encontré esa información en los documentos.",
			},
			"triste": {
				"Siento no poder ayudarte todavía con eso.",
				"Lamento no tener esa información ahora mismo; sigamos intentándolo juntos.",
			},
			"ansioso": {
				"Tranquilo, lo resolveremos; por ahora no encontré esa información.",
				"Vamos con calma: todavía no tengo datos sobre eso en los documentos.",
			},
			"negativo": {
				"Lamento la dificultad; no encontré información sobre eso.",
			},
			"positivo": {
				"¡Buena pregunta! Aunque por ahora no tengo esa información.",
			},
		},
		ClarifyingQuestions: []string{
			"¿Puedes indicarme el nombre del trámite o módulo?",
			"¿En qué paso del procedimiento te encuentras?",
			"¿Qué documento o formulario estás usando?",
			"¿Podrías describir el mensaje o error que ves?",
			"¿Buscas información de algún área en particular?",
		},
		TopicIntro: "Entendí que preguntas por: %s.",

		DocumentSummaryLabel: "Resumen documental:",
		KBSourceName:         "KB",

		EmotionCues: map[string][]string{
			"enojado":     {"enojado", "molesto", "harto", "furioso", "rabia", "indignado", "no sirve", "pesimo"},
			"triste":      {"triste", "deprimido", "desanimado", "decepcionado", "me siento mal"},
			"ansioso":     {"urgente", "preocupado", "ansioso", "nervioso", "angustiado", "rapido por favor"},
			"disgusto":    {"asco", "horrible", "desagradable"},
			"positivo":    {"excelente", "feliz", "encantado", "maravilloso", "me encanta"},
			"sorprendido": {"wow", "increible", "sorprendente"},
		},
	}
}
