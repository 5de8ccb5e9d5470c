package usermessage

import (
	"golang.org/x/text/language"
)

// Localizer turns message keys into display strings, negotiating the language
// against an Accept-Language header. It is total: unknown keys degrade to the
// generic RFA22 text and unsupported languages to the default language.
type Localizer struct {
	matcher  language.Matcher
	tags     []language.Tag
	messages map[language.Tag]map[ShortName]string
}

// NewLocalizer returns a Localizer with the built-in Swedish and English
// texts, Swedish first (the default on failed negotiation).
func NewLocalizer() *Localizer {
	tags := []language.Tag{language.Swedish, language.English}
	return &Localizer{
		matcher: language.NewMatcher(tags),
		tags:    tags,
		messages: map[language.Tag]map[ShortName]string{
			language.Swedish: messagesSwedish,
			language.English: messagesEnglish,
		},
	}
}

// Localize resolves name in the best matching language for acceptLanguage,
// which may be empty or malformed.
func (l *Localizer) Localize(acceptLanguage string, name ShortName) string {
	_, index := language.MatchStrings(l.matcher, acceptLanguage)
	messages := l.messages[l.tags[index]]
	if message, ok := messages[name]; ok {
		return message
	}
	return messages[RFA22]
}

var messagesEnglish = map[ShortName]string{
	ShortNameUnknown: "Unknown error. Please try again.",
	RFA1:             "Start your BankID app.",
	RFA1QR:           "Start the BankID app and scan the QR code.",
	RFA2:             "The BankID app is not installed. Please contact your bank.",
	RFA3:             "Action cancelled. Please try again.",
	RFA4:             "An identification or signing for this personal number is already started. Please try again.",
	RFA5:             "Internal error. Please try again.",
	RFA6:             "Action cancelled.",
	RFA8:             "The BankID app is not responding. Please check that the program is started and that you have internet access. If you don't have a valid BankID you can get one from your bank. Try again.",
	RFA9:             "Enter your security code in the BankID app and select Identify or Sign.",
	RFA13:            "Trying to start your BankID app.",
	RFA14A:           "Searching for BankID, it may take a little while. If a few seconds have passed and still no BankID has been found, you probably don't have a BankID which can be used for this identification or signing on this computer. If you have a BankID card, please insert it into your card reader. If you don't have a BankID you can order one from your bank. If you have a BankID on another device you can start the BankID app on that device.",
	RFA14B:           "Searching for BankID, it may take a little while. If a few seconds have passed and still no BankID has been found, you probably don't have a BankID which can be used for this identification or signing on this device. If you don't have a BankID you can order one from your bank. If you have a BankID on another device you can start the BankID app on that device.",
	RFA15A:           "Searching for BankID, it may take a little while. If a few seconds have passed and still no BankID has been found, you probably don't have a BankID which can be used for this identification or signing on this computer. If you have a BankID card, please insert it into your card reader. If you don't have a BankID you can order one from your bank.",
	RFA15B:           "Searching for BankID, it may take a little while. If a few seconds have passed and still no BankID has been found, you probably don't have a BankID which can be used for this identification or signing on this device. If you don't have a BankID you can order one from your bank.",
	RFA16:            "The BankID you are trying to use is revoked or too old. Please use another BankID or order a new one from your bank.",
	RFA17A:           "The BankID app couldn't be found on your computer or mobile device. Please install it and order a BankID from your bank. Install the app from your app store or https://install.bankid.com.",
	RFA17B:           "Failed to scan the QR code. Start the BankID app and scan the QR code. Check that the app is up to date. If you don't have the app, install it and order a BankID from your bank. Install the app from your app store or https://install.bankid.com.",
	RFA21:            "Identification or signing in progress.",
	RFA22:            "Unknown error. Please try again.",
}

var messagesSwedish = map[ShortName]string{
	ShortNameUnknown: "Okänt fel. Försök igen.",
	RFA1:             "Starta BankID-appen.",
	RFA1QR:           "Starta BankID-appen och läs av QR-koden.",
	RFA2:             "Du har inte BankID-appen installerad. Kontakta din bank.",
	RFA3:             "Åtgärden avbruten. Försök igen.",
	RFA4:             "En identifiering eller underskrift för det här personnumret är redan påbörjad. Försök igen.",
	RFA5:             "Internt tekniskt fel. Försök igen.",
	RFA6:             "Åtgärden avbruten.",
	RFA8:             "BankID-appen svarar inte. Kontrollera att den är startad och att du har internetanslutning. Om du inte har något giltigt BankID kan du skaffa ett hos din bank. Försök sedan igen.",
	RFA9:             "Skriv in din säkerhetskod i BankID-appen och välj Identifiera eller Skriv under.",
	RFA13:            "Försöker starta BankID-appen.",
	RFA14A:           "Söker efter BankID, det kan ta en liten stund. Om det har gått några sekunder och inget BankID har hittats har du sannolikt inget BankID som går att använda för den aktuella identifieringen eller underskriften i den här datorn. Om du har ett BankID-kort, sätt in det i kortläsaren. Om du inte har något BankID kan du skaffa ett hos din bank. Om du har ett BankID på en annan enhet kan du starta BankID-appen där.",
	RFA14B:           "Söker efter BankID, det kan ta en liten stund. Om det har gått några sekunder och inget BankID har hittats har du sannolikt inget BankID som går att använda för den aktuella identifieringen eller underskriften i den här enheten. Om du inte har något BankID kan du skaffa ett hos din bank. Om du har ett BankID på en annan enhet kan du starta BankID-appen där.",
	RFA15A:           "Söker efter BankID, det kan ta en liten stund. Om det har gått några sekunder och inget BankID har hittats har du sannolikt inget BankID som går att använda för den aktuella identifieringen eller underskriften i den här datorn. Om du har ett BankID-kort, sätt in det i kortläsaren. Om du inte har något BankID kan du skaffa ett hos din bank.",
	RFA15B:           "Söker efter BankID, det kan ta en liten stund. Om det har gått några sekunder och inget BankID har hittats har du sannolikt inget BankID som går att använda för den aktuella identifieringen eller underskriften i den här enheten. Om du inte har något BankID kan du skaffa ett hos din bank.",
	RFA16:            "Det BankID du försöker använda är för gammalt eller spärrat. Använd ett annat BankID eller skaffa ett nytt hos din bank.",
	RFA17A:           "BankID-appen verkar inte finnas i din dator eller telefon. Installera den och skaffa ett BankID hos din bank. Installera appen från din appbutik eller https://install.bankid.com.",
	RFA17B:           "Misslyckades att läsa av QR-koden. Starta BankID-appen och läs av QR-koden. Kontrollera att appen är uppdaterad. Om du inte har appen måste du installera den och skaffa ett BankID hos din bank. Installera appen från din appbutik eller https://install.bankid.com.",
	RFA21:            "Identifiering eller underskrift pågår.",
	RFA22:            "Okänt fel. Försök igen.",
}
