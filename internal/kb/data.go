package kb

// Default returns the built-in Per Capital investment FAQ. App-related
// categories live under the APP branch; everything else is a top-level leaf.
func Default() *KB {
	return New([]*Node{
		{
			Name: "PER CAPITAL",
			Questions: []QA{
				{"¿Qué es Per Capital?", "Es un grupo de empresas del Mercado de Valores Venezolano reguladas por la SUNAVAL, compuesta por Casa de Bolsa, Sociedad Administradora de EIC, Asesores de Inversión y Titularizadora."},
				{"¿Qué es la SUNAVAL?", "Es el ente que regula el Mercado de Valores en Venezuela y protege a los inversionistas. www.sunaval.gob.ve"},
				{"¿Qué es la Bolsa de Valores de Caracas?", "Es el lugar donde se compran y venden bonos, acciones y otros instrumentos de manera ordenada a través de las Casas de Bolsa y está regulada por la SUNAVAL."},
				{"¿Cómo invierto?", "Para invertir en el Fondo Mutual Abierto de PER CAPITAL debes descargar el app y registrarte. Para invertir directamente en acciones o bonos debes acudir a una Casa de Bolsa autorizada."},
			},
		},
		{
			Name: "FONDO MUTUAL ABIERTO",
			Questions: []QA{
				{"¿Qué es un Fondo Mutual?", "Es un instrumento de inversión en grupo donde varias personas ponen dinero en un fondo gestionado por expertos, diseñado para ser de bajo riesgo, dirigido a pequeños inversionistas con poca experiencia."},
				{"¿Qué es una Unidad de Inversión?", "Es una porción del fondo. Cuando inviertes adquieres unidades que representan tu parte del fondo."},
				{"¿Qué es el VUI?", "El Valor de la Unidad de Inversión (VUI) es el precio de una Unidad de Inversión. Se calcula diariamente y depende del comportamiento de las inversiones del fondo."},
				{"¿Cómo invierto?", "Descarga el app para Android y iOS, regístrate al 100%, espera tu aprobación y suscribe Unidades de Inversión cuando quieras y cuantas veces desees."},
				{"¿Cuál es el monto mínimo de inversión?", "1 Unidad de Inversión."},
				{"¿Cómo gano?", "Por apreciación (subida del VUI) o por dividendo (si es decretado)."},
				{"¿En cuánto tiempo gano?", "Es recomendable medir resultados de forma trimestral."},
				{"¿Dónde consigo más información?", "En los prospectos y hojas de términos en www.per-capital.com."},
			},
		},
		{
			Name: "APP",
			Children: []*Node{
				{
					Name: "REGISTRO",
					Questions: []QA{
						{"¿Cómo me registro?", "Descarga el app, completa 100% de los datos, acepta los contratos, sube tus recaudos y espera tu aprobación."},
						{"¿Cuánto tarda mi aprobación?", "De 2 a 5 días hábiles siempre que hayas completado 100% del registro y recaudos."},
						{"¿Qué hago si no me aprueban?", "Revisa que hayas completado 100% del registro o contáctanos."},
						{"¿Puedo invertir si soy menor de edad?", "Debes dirigirte a nuestras oficinas y registrarte con tu representante legal."},
						{"¿Puedo modificar alguno de mis datos?", "Sí, pero por exigencia de la ley entras nuevamente en revisión."},
						{"¿Debo tener cuenta en la Caja Venezolana?", "No, no es necesaria para invertir en nuestro Fondo Mutual Abierto."},
					},
				},
				{
					Name: "SUSCRIPCIÓN",
					Questions: []QA{
						{"¿Cómo suscribo (compro)?", "Haz click en Negociación > Suscripción > Monto a invertir > Suscribir > Método de Pago. Paga desde TU cuenta bancaria y sube comprobante."},
						{"¿Cómo pago mi suscripción?", "Debes pagar desde tu cuenta bancaria vía Pago Móvil. No se aceptan pagos de terceros."},
						{"¿Puede pagar alguien por mí?", "No, la ley prohíbe los pagos de terceros."},
						{"¿Cómo veo mi inversión?", "En el Home en la sección Mi Cuenta."},
						{"¿Cuándo veo mi inversión?", "Al cierre del sistema entre 5 pm y 7 pm en días hábiles de mercado."},
						{"¿Cuáles son las comisiones?", "3% flat Suscripción, 3% flat Rescate y 5% anual Administración."},
						{"¿Qué hago después de suscribir?", "Monitorea tu inversión desde el app."},
						{"¿Puedo invertir el monto que quiera?", "Sí, puedes invertir el monto que desees."},
						{"¿Puedo invertir cuando quiera?", "Sí, puedes invertir cuando quieras, las veces que quieras."},
					},
				},
				{
					Name: "RESCATE",
					Questions: []QA{
						{"¿Cómo rescato (vendo)?", "Haz click en Negociación > Rescate > Unidades a Rescatar > Rescatar. Fondos se enviarán a TU cuenta bancaria."},
						{"¿Cuándo me pagan mis rescates?", "Al próximo día hábil bancario en horario de mercado."},
						{"¿Cómo veo el saldo de mi inversión?", "En el Home en la sección Mi Cuenta."},
						{"¿Cuándo veo el saldo de mi inversión?", "Al cierre del sistema entre 5 pm y 7 pm en días hábiles de mercado."},
						{"¿Cuándo puedo rescatar?", "Cuando quieras, puedes rescatar y retirarte del fondo."},
						{"¿Cuáles son las comisiones?", "3% flat Suscripción, 3% flat Rescate y 5% anual Administración."},
					},
				},
				{
					Name: "POSICIÓN",
					Questions: []QA{
						{"¿Cuándo se actualiza mi posición (saldo)?", "Al cierre del sistema entre 5 pm y 7 pm en días hábiles de mercado."},
						{"¿Por qué varía mi posición (saldo)?", "Sube si suben los precios de las inversiones o se reciben dividendos/cupones, baja si los precios caen."},
						{"¿Dónde veo mi histórico?", "En la sección Historial."},
						{"¿Dónde veo reportes?", "En la sección Documentos > Reportes > Año > Trimestre."},
					},
				},
			},
		},
		{
			Name: "RIESGOS",
			Questions: []QA{
				{"¿Cuáles son los riesgos al invertir?", "Todas las inversiones están sujetas a riesgos y la pérdida de capital es posible. Algunos riesgos son: mercado, país, cambiario, sector, entre otros."},
			},
		},
		{
			Name: "SOPORTE",
			Questions: []QA{
				{"Estoy en revisión, ¿qué hago?", "Asegúrate de haber completado 100% datos y recaudos y espera tu aprobación. Si tarda más, contáctanos."},
				{"No me llega el SMS", "Verifica señal y que tu número telefónico venezolano esté correcto."},
				{"No me llega el correo", "Asegúrate de no dejar espacios al final al escribir tu correo."},
				{"No logro descargar el App", "Asegúrate de que tu App Store esté configurada en la región de Venezuela."},
				{"No me abre el App", "Verifica tener la versión actualizada y que tu tienda de apps esté configurada en Venezuela."},
				{"¿Cómo recupero mi clave?", "Selecciona Recuperar, recibirás una clave temporal y luego actualiza tu nueva clave."},
			},
		},
	})
}
