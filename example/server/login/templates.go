package login

import "html/template"

var loginTmpl = template.Must(template.New("login").Parse(`
	<!DOCTYPE html>
	<html>
		<head>
			<meta charset="UTF-8">
			<meta name="viewport" content="width=device-width, initial-scale=1">
			<title>BankID Login</title>
		</head>
		<body style="display: flex; align-items: center; justify-content: center; height: 100vh; font-family: sans-serif;">
			<div style="width: 280px;">
				<h2>Log in with BankID</h2>

				{{if .AllowChangingIdentity}}
				<div>
					<label for="personalIdentityNumber">Personal number:</label>
					<input id="personalIdentityNumber" style="width: 100%">
				</div>
				{{end}}

				<p id="status" style="min-height: 1.5rem;"></p>
				<p id="error" style="color:red; min-height: 1.5rem;"></p>
				<img id="qr" style="display:none; width: 100%;" alt="Scan with the BankID app">
				<a id="launch" style="display:none;">Open the BankID app</a>

				<div>
					<button id="start">Login</button>
					<button id="cancel" style="display:none;">Cancel</button>
				</div>
			</div>

			<script>
				const loginOptions = {{.LoginOptions}};
				const returnUrl = {{.ReturnURL}};
				let orderRef = null;
				let autoStartAttempts = 0;
				let pollTimer = null;

				function csrfToken() {
					const match = document.cookie.match(/(?:^|; )bankid\.csrf=([^;]*)/);
					return match ? decodeURIComponent(match[1]) : "";
				}

				async function post(path, body) {
					const resp = await fetch(path, {
						method: "POST",
						headers: {
							"Content-Type": "application/json",
							"X-CSRF-Token": csrfToken(),
						},
						body: JSON.stringify(body),
					});
					return { ok: resp.ok, body: await resp.json() };
				}

				function show(id, visible) {
					document.getElementById(id).style.display = visible ? "" : "none";
				}

				async function initialize() {
					document.getElementById("error").textContent = "";
					const request = { loginOptions, returnUrl };
					const input = document.getElementById("personalIdentityNumber");
					if (input) {
						request.personalIdentityNumber = input.value;
					}
					const { ok, body } = await post("/api/initialize", request);
					if (!ok) {
						document.getElementById("error").textContent =
							body.errorMessage || body.personalIdentityNumber || "Something went wrong.";
						return;
					}
					orderRef = body.orderRef;
					autoStartAttempts++;
					show("start", false);
					show("cancel", true);
					if (body.qrCodeAsBase64) {
						document.getElementById("qr").src = "data:image/png;base64," + body.qrCodeAsBase64;
						show("qr", true);
					}
					if (body.isAutoLaunch) {
						if (body.deviceMightRequireUserInteraction) {
							const launch = document.getElementById("launch");
							launch.href = body.redirectUri;
							show("launch", true);
						} else {
							window.location = body.redirectUri;
						}
						if (!body.checkStatus) {
							return;
						}
					}
					poll();
				}

				async function poll() {
					const { ok, body } = await post("/api/status", {
						loginOptions, returnUrl, orderRef, autoStartAttempts,
					});
					if (!ok) {
						reset(body.errorMessage || "Something went wrong.");
						return;
					}
					switch (body.status) {
					case "pending":
						document.getElementById("status").textContent = body.statusMessage;
						pollTimer = setTimeout(poll, 2000);
						break;
					case "retry":
						document.getElementById("status").textContent = body.statusMessage;
						initialize();
						break;
					case "finished":
						window.location = body.redirectUri;
						break;
					default:
						reset(body.statusMessage || "Something went wrong.");
					}
				}

				async function cancel() {
					clearTimeout(pollTimer);
					await post("/api/cancel", { orderRef });
					reset("");
				}

				function reset(message) {
					clearTimeout(pollTimer);
					orderRef = null;
					autoStartAttempts = 0;
					document.getElementById("status").textContent = "";
					document.getElementById("error").textContent = message;
					show("qr", false);
					show("launch", false);
					show("cancel", false);
					show("start", true);
				}

				document.getElementById("start").addEventListener("click", initialize);
				document.getElementById("cancel").addEventListener("click", cancel);
			</script>
		</body>
	</html>`))
