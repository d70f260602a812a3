// Package generator produces ready-to-paste client code samples for a
// catalog entry's endpoint.
//
// Generate is a pure function over a fixed template table. The endpoint is
// interpolated into each snippet as a string literal with no escaping: an
// endpoint containing a quote character produces a syntactically invalid
// snippet. That is a known, accepted limitation — the templates live behind
// this package boundary precisely so escaping can be added later without
// touching the routing layer.
package generator

import "fmt"

// Supported language names, as submitted by the generate form.
const (
	LangPython     = "Python"
	LangJavaScript = "JavaScript"
	LangNodeJS     = "Node.js"
	LangJava       = "Java"
)

// Placeholder is returned verbatim for any unrecognized language.
const Placeholder = "No example available."

const pythonTemplate = `
import requests

url = "%s"

response = requests.get(url)
print(response.json())
`

const javascriptTemplate = `
fetch("%s")
    .then(res => res.json())
    .then(data => console.log(data));
`

const nodeTemplate = `
const axios = require("axios");

axios.get("%s")
    .then(res => console.log(res.data));
`

const javaTemplate = `
import java.net.URI;
import java.net.http.HttpClient;
import java.net.http.HttpRequest;
import java.net.http.HttpResponse;

public class Main {
    public static void main(String[] args) throws Exception {

        HttpClient client = HttpClient.newHttpClient();

        HttpRequest request = HttpRequest.newBuilder()
            .uri(URI.create("%s"))
            .build();

        HttpResponse<String> response =
            client.send(request, HttpResponse.BodyHandlers.ofString());

        System.out.println(response.body());
    }
}
`

// Generate returns a source snippet performing a GET on endpoint in the
// given language, or Placeholder when the language is not in the table.
func Generate(endpoint, language string) string {
	switch language {
	case LangPython:
		return fmt.Sprintf(pythonTemplate, endpoint)
	case LangJavaScript:
		return fmt.Sprintf(javascriptTemplate, endpoint)
	case LangNodeJS:
		return fmt.Sprintf(nodeTemplate, endpoint)
	case LangJava:
		return fmt.Sprintf(javaTemplate, endpoint)
	default:
		return Placeholder
	}
}

// Languages lists the selectable languages in display order, used by the
// generate form template.
func Languages() []string {
	return []string{LangPython, LangJavaScript, LangNodeJS, LangJava}
}
