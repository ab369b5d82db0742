package adoption

import (
	"bytes"
	"html/template"
)

var emailTemplate = template.Must(template.New("adoption-info").Parse(`<!DOCTYPE html>
<html lang="es">
  <body style="font-family: Arial, sans-serif; color: #333;">
    <h1 style="color: #e67e22;">¡Hola {{.Name}}!</h1>
    <p>Gracias por tu interés en adoptar en el {{.ShelterName}}.</p>
    <p>Para conocer a nuestros perros y comenzar el proceso de adopción, visítanos en:</p>
    <p><strong>{{.ShelterAddress}}</strong></p>
    <p>Recuerda traer tu cédula de identidad y un comprobante de domicilio.
       Nuestro equipo te acompañará durante todo el proceso.</p>
    <p>¡Te esperamos!</p>
    <p>{{.ShelterName}}</p>
  </body>
</html>
`))

type emailData struct {
	Name           string
	ShelterName    string
	ShelterAddress string
}

func renderEmail(data emailData) (string, error) {
	var buf bytes.Buffer
	if err := emailTemplate.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
